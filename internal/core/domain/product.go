package domain

import (
	"errors"
	"time"
)

// ProductStatus represents the listing state of a product.
type ProductStatus string

const (
	StatusActive  ProductStatus = "active"
	StatusDraft   ProductStatus = "draft"
	StatusSoldOut ProductStatus = "soldout"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidStatus = errors.New("invalid product status")

// ValidStatus reports whether s is one of the known listing states.
func (s ProductStatus) Valid() bool {
	switch s {
	case StatusActive, StatusDraft, StatusSoldOut:
		return true
	}
	return false
}

// SaleRecord captures a single completed sale of a product.
type SaleRecord struct {
	Date     time.Time `json:"date" bson:"date"`
	Quantity int       `json:"quantity" bson:"quantity"`
	Revenue  float64   `json:"revenue" bson:"revenue"`
	OrderID  string    `json:"order_id" bson:"order_id"`
}

// Product is a marketplace listing owned by an entrepreneur account.
type Product struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	OwnerID      string        `json:"owner_id" bson:"owner_id"`
	Name         string        `json:"name" bson:"name"`
	Description  string        `json:"description" bson:"description"`
	Price        float64       `json:"price" bson:"price"`
	Category     string        `json:"category" bson:"category"`
	ImageURL     string        `json:"image_url" bson:"image_url"`
	Status       ProductStatus `json:"status" bson:"status"`
	TotalRevenue float64       `json:"total_revenue" bson:"total_revenue"`
	ProductSold  int           `json:"product_sold" bson:"product_sold"`
	Sales        []SaleRecord  `json:"sales" bson:"sales"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}
