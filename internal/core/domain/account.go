package domain

import (
	"errors"
	"time"
)

// Account roles. The role is fixed at signup and controls which profile
// fields are meaningful and mutable.
const (
	RoleUser         = "user"
	RoleEntrepreneur = "entrepreneur"
	RoleAdmin        = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailExists = errors.New("email already registered")
var ErrAccountNotFound = errors.New("account not found")
var ErrInvalidToken = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
var ErrValidation = errors.New("validation failed")
var ErrServerConfig = errors.New("server configuration error")
var ErrForbidden = errors.New("access forbidden")

// Location is a structured postal address attached to every account.
type Location struct {
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zip_code" bson:"zip_code"`
	Country string `json:"country" bson:"country"`
}

// Account is a persisted identity: a general user, an entrepreneur, or an
// admin. A single entity discriminated by Role; the entrepreneur-only fields
// are empty on user accounts and vice versa.
type Account struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Role            string    `json:"role"`
	Name            string    `json:"name"`
	Location        Location  `json:"location"`
	ProfilePicture  string    `json:"profile_picture,omitempty"`
	ProfileComplete int       `json:"profile_complete"`

	// Entrepreneur-only profile fields.
	BusinessType       string `json:"business_type,omitempty"`
	CompanyName        string `json:"company_name,omitempty"`
	CompanyDescription string `json:"company_description,omitempty"`
	Website            string `json:"website,omitempty"`
	Industry           string `json:"industry,omitempty"`

	// User-only: references to past orders, newest last.
	OrderHistory []string `json:"order_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsEntrepreneur reports whether the account may own product listings.
// Admin accounts carry the same business-profile surface.
func (a *Account) IsEntrepreneur() bool {
	return a.Role == RoleEntrepreneur || a.Role == RoleAdmin
}
