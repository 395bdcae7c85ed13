package ports

import (
	"context"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// RecipeRepository defines persistence operations on a user's recipes.
type RecipeRepository interface {
	Create(ctx context.Context, r *domain.Recipe) error
	// ListByUser returns all recipes ordered by name.
	ListByUser(ctx context.Context, userID string) ([]domain.Recipe, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
