package ports

import (
	"context"

	"github.com/venturehub/marketplace-api/internal/core/domain"
)

// AccountUpdate carries the persistable field changes for a partial profile
// update. Nil pointers leave the stored value untouched.
type AccountUpdate struct {
	Name               *string
	Location           *domain.Location
	ProfilePicture     *string
	ProfileComplete    *int
	PasswordHash       *string
	BusinessType       *string
	CompanyName        *string
	CompanyDescription *string
	Website            *string
	Industry           *string
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// Create inserts a new account and returns it with the generated ID.
	// A duplicate email is reported as domain.ErrEmailExists.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// FindByEmail looks up an account by its lowercased email, including
	// the password hash.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Update applies a partial update and returns the updated account.
	Update(ctx context.Context, id string, update AccountUpdate) (*domain.Account, error)
	// AppendOrder records an order reference on the account's history.
	AppendOrder(ctx context.Context, id, orderID string) error
}
