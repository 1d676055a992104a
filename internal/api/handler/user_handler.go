package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venturehub/marketplace-api/internal/core/ports"
)

// UserHandler serves the current account's profile.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// updateProfileRequest is a partial update: absent fields are left untouched.
// Role and email are not accepted here; role is immutable and email is the
// login key.
type updateProfileRequest struct {
	Name            *string          `json:"name"`
	Location        *locationRequest `json:"location"`
	ProfilePicture  *string          `json:"profile_picture"`
	ProfileComplete *int             `json:"profile_complete"`
	Password        *string          `json:"password"`

	BusinessType       *string `json:"business_type"`
	CompanyName        *string `json:"company_name"`
	CompanyDescription *string `json:"company_description"`
	Website            *string `json:"website"`
	Industry           *string `json:"industry"`
}

// Me returns the calling account, resolved from the session cookie.
//
// @Summary      Get the current account
// @Tags         user
// @Produce      json
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user [get]
func (h *UserHandler) Me(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	account, err := h.authService.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, account)
}

// UpdateProfile applies a role-whitelisted partial update to the calling
// account.
//
// @Summary      Update the current account's profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user [post]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	accountID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	patch := ports.ProfilePatch{
		Name:               req.Name,
		ProfilePicture:     req.ProfilePicture,
		ProfileComplete:    req.ProfileComplete,
		Password:           req.Password,
		BusinessType:       req.BusinessType,
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		Website:            req.Website,
		Industry:           req.Industry,
	}
	if req.Location != nil {
		loc := req.Location.toDomain()
		patch.Location = &loc
	}

	account, err := h.authService.UpdateProfile(c.Request().Context(), accountID, role, patch)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, account)
}
