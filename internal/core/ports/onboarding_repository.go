package ports

import (
	"context"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// OnboardingRepository persists per-user onboarding conversation state.
type OnboardingRepository interface {
	// Find returns domain.ErrOnboardingNotFound when no session exists.
	Find(ctx context.Context, userID string) (*domain.OnboardingSession, error)
	// Save upserts the session keyed by user id.
	Save(ctx context.Context, session *domain.OnboardingSession) error
	CountAll(ctx context.Context) (int64, error)
	CountCompleted(ctx context.Context) (int64, error)
}
