package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderDelivered OrderStatus = "delivered"
	OrderCanceled  OrderStatus = "canceled"
	OrderReturned  OrderStatus = "returned"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderItem is a single product line within an order.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// ShippingAddress is the delivery destination for an order.
type ShippingAddress struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Zip     string `json:"zip" bson:"zip"`
	Country string `json:"country" bson:"country"`
}

// Order is a purchase made by a user account.
type Order struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	UserID          string          `json:"user_id" bson:"user_id"`
	Items           []OrderItem     `json:"items" bson:"items"`
	TotalAmount     float64         `json:"total_amount" bson:"total_amount"`
	Status          OrderStatus     `json:"status" bson:"status"`
	OrderedDate     time.Time       `json:"ordered_date" bson:"ordered_date"`
	DeliveredDate   *time.Time      `json:"delivered_date,omitempty" bson:"delivered_date,omitempty"`
	CanceledDate    *time.Time      `json:"canceled_date,omitempty" bson:"canceled_date,omitempty"`
	ShippingAddress ShippingAddress `json:"shipping_address" bson:"shipping_address"`
	PaymentMethod   string          `json:"payment_method" bson:"payment_method"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" bson:"updated_at"`
}

// ComputeTotal recalculates TotalAmount from the order items. The stored
// total is never trusted from client input.
func (o *Order) ComputeTotal() {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	o.TotalAmount = total
}
