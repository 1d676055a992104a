package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

// ProductService implements listing CRUD with ownership enforcement.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}
	if input.ImageURL == "" {
		return nil, fmt.Errorf("%w: image_url is required", domain.ErrValidation)
	}

	status := domain.ProductStatus(input.Status)
	if input.Status == "" {
		status = domain.StatusDraft
	} else if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Status)
	}

	now := time.Now().UTC()
	product := &domain.Product{
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Status:      status,
		Sales:       []domain.SaleRecord{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("owner_id", created.OwnerID).Msg("product created")
	return created, nil
}

func (s *ProductService) List(ctx context.Context, ownerID string) ([]*domain.Product, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *ProductService) Update(ctx context.Context, input ports.UpdateProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Role != domain.RoleAdmin && existing.OwnerID != input.OwnerID {
		return nil, domain.ErrForbidden
	}

	if input.Price != nil && *input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}

	update := ports.ProductUpdate{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
	}
	if input.Status != nil {
		status := domain.ProductStatus(*input.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *input.Status)
		}
		update.Status = &status
	}

	return s.repo.Update(ctx, input.ID, update)
}

func (s *ProductService) Delete(ctx context.Context, id, role, ownerID string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin && existing.OwnerID != ownerID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
