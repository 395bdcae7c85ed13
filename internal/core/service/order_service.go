package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

// CreateOrderInput carries the fields of a new customer order.
type CreateOrderInput struct {
	Customer     string
	Products     string
	DeliveryDate string
	Value        float64
	Status       domain.OrderStatus
}

type OrderService struct {
	repo    ports.OrderRepository
	cache   ports.Cache
	limiter Limiter
	logger  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, cache ports.Cache, limiter Limiter, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, cache: cache, limiter: limiter, logger: logger}
}

// Create records a new order after the plan check and invalidates the
// user's order cache before returning.
func (s *OrderService) Create(ctx context.Context, uid string, input CreateOrderInput) (string, error) {
	ok, err := s.limiter.CheckLimit(ctx, uid, domain.ActionCreateOrder)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ResourceExhausted("Limite de pedidos atingido para seu plano atual.")
	}

	status := input.Status
	if status == "" {
		status = domain.OrderPending
	}
	if !status.Valid() {
		return "", domain.InvalidArgument("status de pedido inválido")
	}

	order := &domain.Order{
		ID:           uuid.NewString(),
		UserID:       uid,
		Customer:     input.Customer,
		Products:     input.Products,
		DeliveryDate: input.DeliveryDate,
		Value:        input.Value,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("failed to create order")
		return "", err
	}

	s.cache.DeleteOrders(ctx, uid)
	s.logger.Info().Str("uid", uid).Str("order_id", order.ID).Str("customer", order.Customer).Msg("order created")
	return order.ID, nil
}

// List returns the user's orders, read-through cached. The second return
// reports whether the response came from the cache.
func (s *OrderService) List(ctx context.Context, uid string, limit int) ([]domain.Order, bool, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	if cached, ok := s.cache.GetOrders(ctx, uid); ok {
		return cached, true, nil
	}

	orders, err := s.repo.ListByUser(ctx, uid, limit)
	if err != nil {
		return nil, false, err
	}
	if len(orders) > 0 {
		s.cache.SetOrders(ctx, uid, orders)
	}
	return orders, false, nil
}

// UpdateStatus moves one order to a new status and invalidates the cache
// entry.
func (s *OrderService) UpdateStatus(ctx context.Context, uid, id string, status domain.OrderStatus) error {
	if !status.Valid() {
		return domain.InvalidArgument("status de pedido inválido")
	}
	if err := s.repo.UpdateStatus(ctx, uid, id, status); err != nil {
		return err
	}
	s.cache.DeleteOrders(ctx, uid)
	return nil
}
