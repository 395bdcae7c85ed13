package ports

import (
	"context"
	"time"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// ProfileUpdate carries the mutable fields of a user profile. Nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	DisplayName    *string
	PhotoURL       *string
	Preferences    *domain.Preferences
	Plan           *domain.PlanTier
	SubscriptionID *string
	CustomerID     *string
}

// UserRepository defines persistence operations on the users collection.
type UserRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) error
	// FindByUID returns domain.ErrUserNotFound when no profile exists.
	FindByUID(ctx context.Context, uid string) (*domain.UserProfile, error)
	Update(ctx context.Context, uid string, update ProfileUpdate) error
	// TouchLastLogin stamps last_login with the current time.
	TouchLastLogin(ctx context.Context, uid string) error
	// ListAll returns up to limit profiles, newest first (admin use).
	ListAll(ctx context.Context, limit int) ([]*domain.UserProfile, error)
	CountAll(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
