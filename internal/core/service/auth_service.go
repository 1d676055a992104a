package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

const (
	minPasswordUser         = 6
	minPasswordEntrepreneur = 8
)

// dummyHash is compared against when the email is unknown so that login
// failures take the same time whether the email exists or not.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("marketplace-dummy-password"), bcrypt.DefaultCost)

// AuthService implements registration, login, session verification, and
// role-gated profile updates.
type AuthService struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 240 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, string, error) {
	if err := validateRegister(input); err != nil {
		return nil, "", err
	}
	if s.jwtSecret == "" {
		return nil, "", domain.ErrServerConfig
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:              strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:       string(hash),
		Role:               input.Role,
		Name:               input.Name,
		Location:           input.Location,
		BusinessType:       input.BusinessType,
		CompanyName:        input.CompanyName,
		CompanyDescription: input.CompanyDescription,
		Website:            input.Website,
		Industry:           input.Industry,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("account_id", created.ID).Str("role", created.Role).Msg("account registered")
	return created, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}
	if s.jwtSecret == "" {
		return nil, "", domain.ErrServerConfig
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Burn a compare so unknown emails cost the same as bad passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(account)
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}

func (s *AuthService) VerifySession(token string) (ports.SessionClaims, error) {
	if s.jwtSecret == "" {
		return ports.SessionClaims{}, domain.ErrServerConfig
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.SessionClaims{}, domain.ErrTokenExpired
		}
		return ports.SessionClaims{}, domain.ErrInvalidToken
	}
	if !parsed.Valid {
		return ports.SessionClaims{}, domain.ErrInvalidToken
	}

	accountID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if accountID == "" || role == "" {
		return ports.SessionClaims{}, domain.ErrInvalidToken
	}

	return ports.SessionClaims{AccountID: accountID, Role: role}, nil
}

func (s *AuthService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) UpdateProfile(ctx context.Context, accountID, role string, patch ports.ProfilePatch) (*domain.Account, error) {
	update := ports.AccountUpdate{
		Name:            patch.Name,
		Location:        patch.Location,
		ProfilePicture:  patch.ProfilePicture,
		ProfileComplete: patch.ProfileComplete,
	}

	// Business-profile fields only apply to entrepreneur and admin accounts.
	if role == domain.RoleEntrepreneur || role == domain.RoleAdmin {
		update.BusinessType = patch.BusinessType
		update.CompanyName = patch.CompanyName
		update.CompanyDescription = patch.CompanyDescription
		update.Website = patch.Website
		update.Industry = patch.Industry
	}

	if patch.Name != nil && len(strings.TrimSpace(*patch.Name)) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", domain.ErrValidation)
	}
	if patch.ProfileComplete != nil && (*patch.ProfileComplete < 0 || *patch.ProfileComplete > 100) {
		return nil, fmt.Errorf("%w: profile_complete must be between 0 and 100", domain.ErrValidation)
	}

	if patch.Password != nil {
		min := minPasswordUser
		if role == domain.RoleEntrepreneur {
			min = minPasswordEntrepreneur
		}
		if len(*patch.Password) < min {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, min)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, accountID, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", accountID).Msg("profile updated")
	return updated, nil
}

func (s *AuthService) issueToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":  account.ID,
		"role": account.Role,
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func validateRegister(input ports.RegisterInput) error {
	if len(strings.TrimSpace(input.Name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		return fmt.Errorf("%w: email must be a valid address", domain.ErrValidation)
	}

	switch input.Role {
	case domain.RoleUser:
		if len(input.Password) < minPasswordUser {
			return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordUser)
		}
	case domain.RoleEntrepreneur:
		if len(input.Password) < minPasswordEntrepreneur {
			return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordEntrepreneur)
		}
		if input.BusinessType == "" {
			return fmt.Errorf("%w: business_type is required", domain.ErrValidation)
		}
		if input.CompanyName == "" {
			return fmt.Errorf("%w: company_name is required", domain.ErrValidation)
		}
		if input.Industry == "" {
			return fmt.Errorf("%w: industry is required", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unsupported role", domain.ErrValidation)
	}

	loc := input.Location
	if loc.Address == "" || loc.City == "" || loc.State == "" || loc.ZipCode == "" || loc.Country == "" {
		return fmt.Errorf("%w: location is incomplete", domain.ErrValidation)
	}

	return nil
}
