package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/venturehub/marketplace-api/internal/core/domain"
)

func runRequireRole(t *testing.T, role string, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	handler := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"entrepreneur allowed", domain.RoleEntrepreneur, []string{domain.RoleEntrepreneur, domain.RoleAdmin}, http.StatusOK},
		{"admin allowed", domain.RoleAdmin, []string{domain.RoleEntrepreneur, domain.RoleAdmin}, http.StatusOK},
		{"user rejected", domain.RoleUser, []string{domain.RoleEntrepreneur, domain.RoleAdmin}, http.StatusForbidden},
		{"no role rejected", "", []string{domain.RoleUser}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runRequireRole(t, tt.role, tt.allowed...)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}
