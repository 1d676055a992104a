package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

// OrderService implements order placement and history lookup.
type OrderService struct {
	orders   ports.OrderRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, accounts ports.AccountRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, accounts: accounts, logger: logger}
}

// Place creates a pending order for userID. The total is recomputed from the
// items; the order ID is appended to the account's order history.
func (s *OrderService) Place(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", domain.ErrValidation)
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.Price < 0 {
			return nil, fmt.Errorf("%w: invalid order item", domain.ErrValidation)
		}
	}
	if input.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment_method is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		UserID:          input.UserID,
		Items:           input.Items,
		Status:          domain.OrderPending,
		OrderedDate:     now,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.ComputeTotal()

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.AppendOrder(ctx, input.UserID, created.ID); err != nil {
		// The order exists; history is advisory. Log and move on.
		s.logger.Warn().Err(err).Str("order_id", created.ID).Msg("failed to append order to account history")
	}

	s.logger.Info().Str("order_id", created.ID).Str("user_id", input.UserID).Float64("total", created.TotalAmount).Msg("order placed")
	return created, nil
}

// ListForUser returns the caller's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
