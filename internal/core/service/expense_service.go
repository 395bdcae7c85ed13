package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

// defaultListLimit caps list queries when the caller does not specify one.
const defaultListLimit = 50

// CreateExpenseInput carries the fields of a new expense.
type CreateExpenseInput struct {
	Date        string
	Type        string
	Value       float64
	Supplier    string
	Description string
	Category    string
}

type ExpenseService struct {
	repo    ports.ExpenseRepository
	cache   ports.Cache
	limiter Limiter
	logger  zerolog.Logger
}

func NewExpenseService(repo ports.ExpenseRepository, cache ports.Cache, limiter Limiter, logger zerolog.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, cache: cache, limiter: limiter, logger: logger}
}

// Create records a new expense after the plan check and invalidates the
// user's expense cache before returning.
func (s *ExpenseService) Create(ctx context.Context, uid string, input CreateExpenseInput) (string, error) {
	ok, err := s.limiter.CheckLimit(ctx, uid, domain.ActionCreateExpense)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ResourceExhausted("Limite de despesas atingido para seu plano atual.")
	}

	expense := &domain.Expense{
		ID:          uuid.NewString(),
		UserID:      uid,
		Date:        input.Date,
		Type:        input.Type,
		Value:       input.Value,
		Supplier:    input.Supplier,
		Description: input.Description,
		Category:    input.Category,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("failed to create expense")
		return "", err
	}

	s.cache.DeleteExpenses(ctx, uid)
	s.logger.Info().Str("uid", uid).Str("expense_id", expense.ID).Msg("expense created")
	return expense.ID, nil
}

// List returns the user's expenses, read-through cached. The second return
// reports whether the response came from the cache.
func (s *ExpenseService) List(ctx context.Context, uid string, limit int) ([]domain.Expense, bool, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	if cached, ok := s.cache.GetExpenses(ctx, uid); ok {
		return cached, true, nil
	}

	expenses, err := s.repo.ListByUser(ctx, uid, limit)
	if err != nil {
		return nil, false, err
	}
	if len(expenses) > 0 {
		s.cache.SetExpenses(ctx, uid, expenses)
	}
	return expenses, false, nil
}

// Update mutates one expense and invalidates the cache entry so the next
// read recomputes from the store.
func (s *ExpenseService) Update(ctx context.Context, uid, id string, update ports.ExpenseUpdate) error {
	if err := s.repo.Update(ctx, uid, id, update); err != nil {
		return err
	}
	s.cache.DeleteExpenses(ctx, uid)
	return nil
}

// Delete removes one expense and invalidates the cache entry.
func (s *ExpenseService) Delete(ctx context.Context, uid, id string) error {
	if err := s.repo.Delete(ctx, uid, id); err != nil {
		return err
	}
	s.cache.DeleteExpenses(ctx, uid)
	return nil
}
