package handler

import (
	"github.com/venturehub/marketplace-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type locationRequest struct {
	Address string `json:"address"  validate:"required,min=2"`
	City    string `json:"city"     validate:"required,min=2"`
	State   string `json:"state"    validate:"required,min=2"`
	ZipCode string `json:"zip_code" validate:"required,min=2"`
	Country string `json:"country"  validate:"required,min=2"`
}

type signupRequest struct {
	Name     string          `json:"name"     validate:"required,min=2"`
	Email    string          `json:"email"    validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Location locationRequest `json:"location" validate:"required"`
}

type signupEntrepreneurRequest struct {
	Name               string          `json:"name"          validate:"required,min=2"`
	Email              string          `json:"email"         validate:"required,email"`
	Password           string          `json:"password"      validate:"required,min=8"`
	BusinessType       string          `json:"business_type" validate:"required,min=2"`
	CompanyName        string          `json:"company_name"  validate:"required,min=2"`
	Industry           string          `json:"industry"      validate:"required,min=2"`
	CompanyDescription string          `json:"company_description"`
	Website            string          `json:"website"`
	Location           locationRequest `json:"location" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Account *domain.Account `json:"account"`
}

func (l locationRequest) toDomain() domain.Location {
	return domain.Location{
		Address: l.Address,
		City:    l.City,
		State:   l.State,
		ZipCode: l.ZipCode,
		Country: l.Country,
	}
}
