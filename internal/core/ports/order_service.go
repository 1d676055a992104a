package ports

import (
	"context"

	"github.com/venturehub/marketplace-api/internal/core/domain"
)

// PlaceOrderInput carries all data needed to place an order. UserID is
// resolved from the session.
type PlaceOrderInput struct {
	UserID          string
	Items           []domain.OrderItem
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Place(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Order, error)
}
