package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

type stubVerifier struct {
	claims ports.SessionClaims
	err    error
}

func (v stubVerifier) VerifySession(token string) (ports.SessionClaims, error) {
	if v.err != nil {
		return ports.SessionClaims{}, v.err
	}
	return v.claims, nil
}

func runSession(t *testing.T, verifier ports.SessionVerifier, mutate func(*http.Request)) (echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	if mutate != nil {
		mutate(req)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Session(verifier)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestSession_CookieToken(t *testing.T) {
	verifier := stubVerifier{claims: ports.SessionClaims{AccountID: "acc_1", Role: domain.RoleUser}}

	c, err := runSession(t, verifier, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "signed.jwt.token"})
	})
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if got, _ := c.Get("account_id").(string); got != "acc_1" {
		t.Fatalf("expected account_id acc_1, got %q", got)
	}
	if got, _ := c.Get("role").(string); got != domain.RoleUser {
		t.Fatalf("expected role %s, got %q", domain.RoleUser, got)
	}
}

func TestSession_BearerToken(t *testing.T) {
	verifier := stubVerifier{claims: ports.SessionClaims{AccountID: "acc_2", Role: domain.RoleEntrepreneur}}

	c, err := runSession(t, verifier, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer signed.jwt.token")
	})
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if got, _ := c.Get("account_id").(string); got != "acc_2" {
		t.Fatalf("expected account_id acc_2, got %q", got)
	}
}

func TestSession_MissingToken(t *testing.T) {
	_, err := runSession(t, stubVerifier{}, nil)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if he.Message != "authentication token not found" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestSession_ExpiredToken(t *testing.T) {
	verifier := stubVerifier{err: domain.ErrTokenExpired}

	_, err := runSession(t, verifier, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired.jwt.token"})
	})

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if he.Message != "token expired" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestSession_InvalidToken(t *testing.T) {
	verifier := stubVerifier{err: domain.ErrInvalidToken}

	_, err := runSession(t, verifier, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer tampered.jwt.token")
	})

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if he.Message != "invalid token" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}
