package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venturehub/marketplace-api/internal/api/middleware"
	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn      func(ctx context.Context, input ports.RegisterInput) (*domain.Account, string, error)
	loginFn         func(ctx context.Context, email, password string) (*domain.Account, string, error)
	verifyFn        func(token string) (ports.SessionClaims, error)
	getAccountFn    func(ctx context.Context, id string) (*domain.Account, error)
	updateProfileFn func(ctx context.Context, accountID, role string, patch ports.ProfilePatch) (*domain.Account, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, string, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) VerifySession(token string) (ports.SessionClaims, error) {
	return s.verifyFn(token)
}

func (s *stubAuthService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getAccountFn(ctx, id)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, accountID, role string, patch ports.ProfilePatch) (*domain.Account, error) {
	return s.updateProfileFn(ctx, accountID, role, patch)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	return nil
}

const signupBody = `{
	"name": "Alice",
	"email": "alice@example.com",
	"password": "secret123",
	"location": {"address": "1 Main St", "city": "Austin", "state": "TX", "zip_code": "78701", "country": "US"}
}`

func TestAuthHandler_Signup(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.Account, string, error) {
			if input.Role != domain.RoleUser {
				t.Fatalf("expected role %s, got %s", domain.RoleUser, input.Role)
			}
			account := &domain.Account{ID: "acc_1", Email: input.Email, Name: input.Name, Role: input.Role, PasswordHash: "bcrypt-hash"}
			return account, "signed.jwt.token", nil
		},
	}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newTestContext(http.MethodPost, "/auth/signup", signupBody)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("expected session cookie to be set")
	}
	if cookie.Value != "signed.jwt.token" {
		t.Fatalf("unexpected cookie value: %s", cookie.Value)
	}
	if !cookie.HttpOnly || cookie.Path != "/" {
		t.Fatalf("expected HttpOnly cookie on /: %+v", cookie)
	}
	if cookie.MaxAge != 3600 {
		t.Fatalf("expected max-age 3600, got %d", cookie.MaxAge)
	}

	// The password hash must never appear in a response.
	if strings.Contains(rec.Body.String(), "bcrypt-hash") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks credentials: %s", rec.Body.String())
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	// Password below the 6-character minimum is rejected before the service.
	body := strings.Replace(signupBody, "secret123", "123", 1)
	c, _ := newTestContext(http.MethodPost, "/auth/signup", body)

	err := h.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.Account, string, error) {
			return nil, "", domain.ErrEmailExists
		},
	}
	h := NewAuthHandler(svc, time.Hour, false)

	c, _ := newTestContext(http.MethodPost, "/auth/signup", signupBody)
	if err := h.Signup(c); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists to propagate, got %v", err)
	}
}

func TestAuthHandler_SignupEntrepreneur_RequiresBusinessFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	// Same payload as a user signup: business_type etc. are missing.
	c, _ := newTestContext(http.MethodPost, "/auth/signup/entrepreneur", signupBody)

	err := h.SignupEntrepreneur(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.Account, string, error) {
			if email != "alice@example.com" || password != "secret123" {
				return nil, "", domain.ErrInvalidCredentials
			}
			return &domain.Account{ID: "acc_1", Email: email, Role: domain.RoleUser}, "signed.jwt.token", nil
		},
	}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email": "alice@example.com", "password": "secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cookie := sessionCookie(rec); cookie == nil || cookie.Value != "signed.jwt.token" {
		t.Fatalf("expected session cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*domain.Account, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc, time.Hour, false)

	c, _ := newTestContext(http.MethodPost, "/auth/login", `{"email": "alice@example.com", "password": "wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	c, rec := newTestContext(http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("expected cookie to be cleared")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired empty cookie, got %+v", cookie)
	}
}
