package ports

import (
	"context"

	"github.com/venturehub/marketplace-api/internal/core/domain"
)

// CreateProductInput carries all data needed to create a listing. OwnerID is
// resolved from the session, never taken from the request body.
type CreateProductInput struct {
	OwnerID     string
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Status      string
}

// UpdateProductInput is a partial listing update. Ownership is enforced by
// the service: Role and OwnerID identify the caller, not the listing.
type UpdateProductInput struct {
	ID      string
	Role    string
	OwnerID string

	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	Status      *string
}

// ProductService defines use-case operations for product listings.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	// List returns the products owned by ownerID, newest first.
	List(ctx context.Context, ownerID string) ([]*domain.Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*domain.Product, error)
	// Delete removes a listing after checking the caller owns it (admins
	// may delete any listing).
	Delete(ctx context.Context, id, role, ownerID string) error
}
