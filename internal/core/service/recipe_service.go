package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

type CreateRecipeInput struct {
	Name        string
	Ingredients []domain.Ingredient
}

type RecipeService struct {
	repo    ports.RecipeRepository
	cache   ports.Cache
	limiter Limiter
	logger  zerolog.Logger
}

func NewRecipeService(repo ports.RecipeRepository, cache ports.Cache, limiter Limiter, logger zerolog.Logger) *RecipeService {
	return &RecipeService{repo: repo, cache: cache, limiter: limiter, logger: logger}
}

func (s *RecipeService) Create(ctx context.Context, uid string, input CreateRecipeInput) (string, error) {
	ok, err := s.limiter.CheckLimit(ctx, uid, domain.ActionCreateRecipe)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ResourceExhausted("Limite de receitas atingido para seu plano atual.")
	}

	recipe := &domain.Recipe{
		ID:          uuid.NewString(),
		UserID:      uid,
		Name:        input.Name,
		Ingredients: input.Ingredients,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, recipe); err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("failed to create recipe")
		return "", err
	}

	s.cache.DeleteRecipes(ctx, uid)
	s.logger.Info().Str("uid", uid).Str("recipe_id", recipe.ID).Str("name", recipe.Name).Msg("recipe created")
	return recipe.ID, nil
}

func (s *RecipeService) List(ctx context.Context, uid string) ([]domain.Recipe, bool, error) {
	if cached, ok := s.cache.GetRecipes(ctx, uid); ok {
		return cached, true, nil
	}

	recipes, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, false, err
	}
	if len(recipes) > 0 {
		s.cache.SetRecipes(ctx, uid, recipes)
	}
	return recipes, false, nil
}
