package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/api/metrics"
	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

// Limiter reports whether a quota-gated create may proceed.
type Limiter interface {
	CheckLimit(ctx context.Context, uid string, action domain.PlanAction) (bool, error)
}

// PlanLimiter enforces per-tier count ceilings. The check is advisory, not
// transactional: two concurrent creates can both pass and briefly exceed the
// ceiling, since check-then-create is not atomic against the store.
type PlanLimiter struct {
	users    ports.UserRepository
	expenses ports.ExpenseRepository
	orders   ports.OrderRepository
	recipes  ports.RecipeRepository
	logger   zerolog.Logger
}

func NewPlanLimiter(
	users ports.UserRepository,
	expenses ports.ExpenseRepository,
	orders ports.OrderRepository,
	recipes ports.RecipeRepository,
	logger zerolog.Logger,
) *PlanLimiter {
	return &PlanLimiter{
		users:    users,
		expenses: expenses,
		orders:   orders,
		recipes:  recipes,
		logger:   logger,
	}
}

// CheckLimit returns true when the user's live count for the action's entity
// kind is strictly below the tier ceiling. Users without a profile are
// denied.
func (l *PlanLimiter) CheckLimit(ctx context.Context, uid string, action domain.PlanAction) (bool, error) {
	profile, err := l.users.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	ceiling := profile.Plan.Limits().Ceiling(action)
	if ceiling == domain.Unlimited {
		return true, nil
	}

	var count int64
	switch action {
	case domain.ActionCreateExpense:
		count, err = l.expenses.CountByUser(ctx, uid)
	case domain.ActionCreateOrder:
		count, err = l.orders.CountByUser(ctx, uid)
	case domain.ActionCreateRecipe:
		count, err = l.recipes.CountByUser(ctx, uid)
	default:
		return true, nil
	}
	if err != nil {
		return false, err
	}

	allowed := count < int64(ceiling)
	if !allowed {
		metrics.PlanDenialsTotal.WithLabelValues(string(profile.Plan), string(action)).Inc()
		l.logger.Info().
			Str("uid", uid).
			Str("plan", string(profile.Plan)).
			Str("action", string(action)).
			Int64("count", count).
			Int("ceiling", ceiling).
			Msg("plan ceiling reached")
	}
	return allowed, nil
}
