package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venturehub/marketplace-api/internal/api/metrics"
	"github.com/venturehub/marketplace-api/internal/api/middleware"
	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

// AuthHandler handles signup, login, and logout.
type AuthHandler struct {
	authService ports.AuthService
	tokenTTL    time.Duration
	// secureCookies should be true whenever transport is not local/plaintext.
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL, secureCookies: secureCookies}
}

// Signup creates a general-user account.
//
// @Summary      Register a user account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues(domain.RoleUser, "invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return h.register(c, ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     domain.RoleUser,
		Location: req.Location.toDomain(),
	})
}

// SignupEntrepreneur creates an entrepreneur account.
//
// @Summary      Register an entrepreneur account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupEntrepreneurRequest  true  "Signup details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/signup/entrepreneur [post]
func (h *AuthHandler) SignupEntrepreneur(c echo.Context) error {
	var req signupEntrepreneurRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues(domain.RoleEntrepreneur, "invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return h.register(c, ports.RegisterInput{
		Email:              req.Email,
		Password:           req.Password,
		Name:               req.Name,
		Role:               domain.RoleEntrepreneur,
		Location:           req.Location.toDomain(),
		BusinessType:       req.BusinessType,
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		Website:            req.Website,
		Industry:           req.Industry,
	})
}

func (h *AuthHandler) register(c echo.Context, input ports.RegisterInput) error {
	account, token, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailExists):
			metrics.SignupsTotal.WithLabelValues(input.Role, "duplicate").Inc()
		case errors.Is(err, domain.ErrValidation):
			metrics.SignupsTotal.WithLabelValues(input.Role, "invalid").Inc()
		}
		return err
	}

	metrics.SignupsTotal.WithLabelValues(input.Role, "created").Inc()
	h.setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, authResponse{Account: account})
}

// Login authenticates an account and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, authResponse{Account: account})
}

// Logout clears the session cookie. Tokens are stateless, so this only
// affects the browser copy.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
