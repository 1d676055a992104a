package ports

import (
	"context"

	"github.com/venturehub/marketplace-api/internal/core/domain"
)

// ProductUpdate carries the persistable field changes for a product update.
// Nil pointers leave the stored value untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	Status      *domain.ProductStatus
}

// ProductRepository defines persistence operations for product listings.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// ListByOwner returns all products owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error)
	Update(ctx context.Context, id string, update ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
