package ports

import (
	"context"

	"github.com/venturehub/marketplace-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account. Role is set
// by the transport layer from the signup endpoint, never from client fields.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	Location domain.Location

	// Entrepreneur signup only.
	BusinessType       string
	CompanyName        string
	CompanyDescription string
	Website            string
	Industry           string
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
// Role is deliberately absent: it is immutable through profile updates.
type ProfilePatch struct {
	Name            *string
	Location        *domain.Location
	ProfilePicture  *string
	ProfileComplete *int
	Password        *string

	// Applied only to entrepreneur accounts.
	BusinessType       *string
	CompanyName        *string
	CompanyDescription *string
	Website            *string
	Industry           *string
}

// SessionClaims are the identity claims embedded in a session token at
// issuance.
type SessionClaims struct {
	AccountID string
	Role      string
}

// SessionVerifier checks a session token and returns the claims it carries.
// Verification is a pure computation; no storage access is involved.
type SessionVerifier interface {
	VerifySession(token string) (SessionClaims, error)
}

// AuthService defines the identity and session use-cases.
type AuthService interface {
	SessionVerifier

	// Register creates an account and issues a session token for it.
	Register(ctx context.Context, input RegisterInput) (*domain.Account, string, error)
	// Login verifies credentials and issues a session token. Unknown email
	// and wrong password fail identically with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.Account, string, error)
	// GetAccount resolves the full account for a verified session.
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	// UpdateProfile applies a role-whitelisted partial update.
	UpdateProfile(ctx context.Context, accountID, role string, patch ProfilePatch) (*domain.Account, error)
}
