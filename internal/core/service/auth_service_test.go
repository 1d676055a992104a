package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account // keyed by lowercased email
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Email]; exists {
		return nil, domain.ErrEmailExists
	}
	created := cloneAccount(account)
	r.nextID++
	created.ID = fmt.Sprintf("acc_%d", r.nextID)
	r.accounts[created.Email] = cloneAccount(created)
	return cloneAccount(created), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if a, ok := r.accounts[email]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Update(_ context.Context, id string, update ports.AccountUpdate) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.ID != id {
			continue
		}
		if update.Name != nil {
			a.Name = *update.Name
		}
		if update.Location != nil {
			a.Location = *update.Location
		}
		if update.ProfilePicture != nil {
			a.ProfilePicture = *update.ProfilePicture
		}
		if update.ProfileComplete != nil {
			a.ProfileComplete = *update.ProfileComplete
		}
		if update.PasswordHash != nil {
			a.PasswordHash = *update.PasswordHash
		}
		if update.BusinessType != nil {
			a.BusinessType = *update.BusinessType
		}
		if update.CompanyName != nil {
			a.CompanyName = *update.CompanyName
		}
		if update.CompanyDescription != nil {
			a.CompanyDescription = *update.CompanyDescription
		}
		if update.Website != nil {
			a.Website = *update.Website
		}
		if update.Industry != nil {
			a.Industry = *update.Industry
		}
		a.UpdatedAt = time.Now().UTC()
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) AppendOrder(_ context.Context, id, orderID string) error {
	for _, a := range r.accounts {
		if a.ID == id {
			a.OrderHistory = append(a.OrderHistory, orderID)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func testLocation() domain.Location {
	return domain.Location{
		Address: "1 Main St",
		City:    "Austin",
		State:   "TX",
		ZipCode: "78701",
		Country: "US",
	}
}

func userInput(email, password string) ports.RegisterInput {
	return ports.RegisterInput{
		Email:    email,
		Password: password,
		Name:     "Alice",
		Role:     domain.RoleUser,
		Location: testLocation(),
	}
}

func entrepreneurInput(email, password string) ports.RegisterInput {
	return ports.RegisterInput{
		Email:        email,
		Password:     password,
		Name:         "Bob",
		Role:         domain.RoleEntrepreneur,
		Location:     testLocation(),
		BusinessType: "retail",
		CompanyName:  "Bobs Goods",
		Industry:     "commerce",
	}
}

func newTestAuthService(repo ports.AccountRepository) *AuthService {
	return NewAuthService(repo, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)

	account, token, err := svc.Register(context.Background(), userInput("a@b.com", "secret123"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.ID == "" {
		t.Fatalf("expected generated id")
	}
	if account.PasswordHash == "secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", account.Role)
	}
	if token == "" {
		t.Fatalf("expected session token")
	}
}

func TestAuthService_Register_PasswordBoundary(t *testing.T) {
	tests := []struct {
		name    string
		input   ports.RegisterInput
		wantErr bool
	}{
		{"user at minimum", userInput("u1@b.com", "123456"), false},
		{"user below minimum", userInput("u2@b.com", "12345"), true},
		{"entrepreneur at minimum", entrepreneurInput("e1@b.com", "12345678"), false},
		{"entrepreneur below minimum", entrepreneurInput("e2@b.com", "1234567"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(newStubAccountRepo())
			_, _, err := svc.Register(context.Background(), tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthService_Register_EntrepreneurRequiredFields(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo())

	input := entrepreneurInput("e@b.com", "12345678")
	input.CompanyName = ""
	if _, _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing company name, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)

	if _, _, err := svc.Register(context.Background(), userInput("dup@b.com", "secret123")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), userInput("dup@b.com", "other1234")); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Register_MissingSecret(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), "", time.Hour, zerolog.Nop())
	if _, _, err := svc.Register(context.Background(), userInput("a@b.com", "secret123")); !errors.Is(err, domain.ErrServerConfig) {
		t.Fatalf("expected ErrServerConfig, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)

	created, _, err := svc.Register(context.Background(), userInput("carol@example.com", "s3cret99"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	account, token, err := svc.Login(context.Background(), "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if account.ID != created.ID {
		t.Fatalf("expected account %s, got %s", created.ID, account.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != created.ID {
		t.Fatalf("expected sub %s, got %v", created.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleUser {
		t.Fatalf("expected role %s, got %v", domain.RoleUser, claims["role"])
	}
	if claims["jti"] == "" {
		t.Fatalf("expected jti claim")
	}
}

func TestAuthService_Login_CaseInsensitiveEmail(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo())

	if _, _, err := svc.Register(context.Background(), userInput("mixed@case.com", "secret123")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "MIXED@CASE.COM", "secret123"); err != nil {
		t.Fatalf("expected case-insensitive login to succeed, got %v", err)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo())

	if _, _, err := svc.Register(context.Background(), userInput("known@b.com", "goodpass")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, _, errWrongPass := svc.Login(context.Background(), "known@b.com", "badpass1")
	_, _, errUnknown := svc.Login(context.Background(), "ghost@b.com", "whatever1")

	if !errors.Is(errWrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if errWrongPass.Error() != errUnknown.Error() {
		t.Fatalf("failure responses differ: %q vs %q", errWrongPass, errUnknown)
	}
}

func TestAuthService_VerifySession_RoundTrip(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo())

	created, token, err := svc.Register(context.Background(), entrepreneurInput("rt@b.com", "longenough"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims, err := svc.VerifySession(token)
	if err != nil {
		t.Fatalf("VerifySession failed: %v", err)
	}
	if claims.AccountID != created.ID {
		t.Fatalf("expected account %s, got %s", created.ID, claims.AccountID)
	}
	if claims.Role != domain.RoleEntrepreneur {
		t.Fatalf("expected role %s, got %s", domain.RoleEntrepreneur, claims.Role)
	}
}

func TestAuthService_VerifySession_RotatedSecret(t *testing.T) {
	issuer := NewAuthService(newStubAccountRepo(), "old-secret", time.Hour, zerolog.Nop())
	verifier := NewAuthService(newStubAccountRepo(), "new-secret", time.Hour, zerolog.Nop())

	_, token, err := issuer.Register(context.Background(), userInput("rot@b.com", "secret123"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := verifier.VerifySession(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for rotated secret, got %v", err)
	}
}

func TestAuthService_VerifySession_Expired(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), "secret", time.Hour, zerolog.Nop())

	claims := jwt.MapClaims{
		"sub":  "acc_1",
		"role": domain.RoleUser,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.VerifySession(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_VerifySession_Malformed(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo())
	if _, err := svc.VerifySession("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_UpdateProfile_EmptyPatch(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)

	created, _, err := svc.Register(context.Background(), userInput("patch@b.com", "secret123"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), created.ID, created.Role, ports.ProfilePatch{})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if updated.Name != created.Name || updated.Email != created.Email || updated.Location != created.Location {
		t.Fatalf("empty patch changed fields: %+v", updated)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("expected UpdatedAt to advance")
	}
}

func TestAuthService_UpdateProfile_RoleWhitelist(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)

	created, _, err := svc.Register(context.Background(), userInput("plain@b.com", "secret123"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	company := "Sneaky Corp"
	updated, err := svc.UpdateProfile(context.Background(), created.ID, created.Role, ports.ProfilePatch{CompanyName: &company})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.CompanyName != "" {
		t.Fatalf("user account must not gain business fields, got %q", updated.CompanyName)
	}
	if updated.Role != domain.RoleUser {
		t.Fatalf("role must be immutable, got %s", updated.Role)
	}
}

func TestAuthService_UpdateProfile_PasswordRehash(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo)

	created, _, err := svc.Register(context.Background(), userInput("rehash@b.com", "oldpass1"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	newPass := "newpass99"
	updated, err := svc.UpdateProfile(context.Background(), created.ID, created.Role, ports.ProfilePatch{Password: &newPass})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.PasswordHash == newPass || strings.Contains(updated.PasswordHash, newPass) {
		t.Fatalf("password stored without hashing")
	}

	if _, _, err := svc.Login(context.Background(), "rehash@b.com", "newpass99"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "rehash@b.com", "oldpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
}

func TestAuthService_UpdateProfile_NotFound(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo())
	if _, err := svc.UpdateProfile(context.Background(), "missing", domain.RoleUser, ports.ProfilePatch{}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
