package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/venturehub/marketplace-api/internal/core/domain"
)

const orderCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(orderCollection)}
}

type mongoOrder struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty"`
	UserID          string                 `bson:"user_id"`
	Items           []domain.OrderItem     `bson:"items"`
	TotalAmount     float64                `bson:"total_amount"`
	Status          string                 `bson:"status"`
	OrderedDate     time.Time              `bson:"ordered_date"`
	DeliveredDate   *time.Time             `bson:"delivered_date,omitempty"`
	CanceledDate    *time.Time             `bson:"canceled_date,omitempty"`
	ShippingAddress domain.ShippingAddress `bson:"shipping_address"`
	PaymentMethod   string                 `bson:"payment_method"`
	CreatedAt       time.Time              `bson:"created_at"`
	UpdatedAt       time.Time              `bson:"updated_at"`
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		UserID:          o.UserID,
		Items:           o.Items,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		OrderedDate:     o.OrderedDate,
		DeliveredDate:   o.DeliveredDate,
		CanceledDate:    o.CanceledDate,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *o
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "ordered_date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	for cursor.Next(ctx) {
		var mo mongoOrder
		if err := cursor.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, mo.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// EnsureIndexes creates the user index backing order-history lookups.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "ordered_date", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mo *mongoOrder) toDomain() *domain.Order {
	return &domain.Order{
		ID:              mo.ID.Hex(),
		UserID:          mo.UserID,
		Items:           mo.Items,
		TotalAmount:     mo.TotalAmount,
		Status:          domain.OrderStatus(mo.Status),
		OrderedDate:     mo.OrderedDate.UTC(),
		DeliveredDate:   mo.DeliveredDate,
		CanceledDate:    mo.CanceledDate,
		ShippingAddress: mo.ShippingAddress,
		PaymentMethod:   mo.PaymentMethod,
		CreatedAt:       mo.CreatedAt.UTC(),
		UpdatedAt:       mo.UpdatedAt.UTC(),
	}
}
