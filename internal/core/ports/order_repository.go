package ports

import (
	"context"

	"github.com/venturehub/marketplace-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByUser returns the orders placed by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
}
