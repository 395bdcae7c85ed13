package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

// SetupUserInput carries the identity fields captured at sign-in.
type SetupUserInput struct {
	Email       string
	DisplayName string
	PhotoURL    string
}

// UserStats summarizes one user's account for the stats intent.
type UserStats struct {
	Plan      domain.PlanTier   `json:"plan"`
	Limits    domain.PlanLimits `json:"limits"`
	CreatedAt time.Time         `json:"createdAt"`
	LastLogin time.Time         `json:"lastLogin"`
}

type UserService struct {
	repo   ports.UserRepository
	cache  ports.Cache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.Cache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

// Setup returns the existing profile or creates one on the free plan.
// The second return reports whether the profile was created now.
func (s *UserService) Setup(ctx context.Context, uid string, input SetupUserInput) (*domain.UserProfile, bool, error) {
	profile, err := s.repo.FindByUID(ctx, uid)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	profile = &domain.UserProfile{
		UID:         uid,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		PhotoURL:    input.PhotoURL,
		Plan:        domain.PlanFree,
		Preferences: domain.DefaultPreferences(),
		CreatedAt:   now,
		LastLogin:   now,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("failed to create user profile")
		return nil, false, err
	}
	s.logger.Info().Str("uid", uid).Str("email", input.Email).Msg("user profile created")
	return profile, true, nil
}

// GetProfile reads the profile through the cache. The second return
// reports a cache hit.
func (s *UserService) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, bool, error) {
	if cached, ok := s.cache.GetProfile(ctx, uid); ok {
		return cached, true, nil
	}

	profile, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		return nil, false, err
	}
	s.cache.SetProfile(ctx, uid, profile)
	return profile, false, nil
}

// UpdatePlan moves the user to a new plan tier and drops the cached
// profile so the next read sees the change.
func (s *UserService) UpdatePlan(ctx context.Context, uid string, plan domain.PlanTier) error {
	if !plan.Valid() {
		return domain.InvalidArgument("Plano inválido")
	}
	if err := s.repo.Update(ctx, uid, ports.ProfileUpdate{Plan: &plan}); err != nil {
		return err
	}
	s.cache.DeleteProfile(ctx, uid)
	s.logger.Info().Str("uid", uid).Str("plan", string(plan)).Msg("user plan updated")
	return nil
}

func (s *UserService) Stats(ctx context.Context, uid string) (*UserStats, error) {
	profile, _, err := s.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		Plan:      profile.Plan,
		Limits:    profile.Plan.Limits(),
		CreatedAt: profile.CreatedAt,
		LastLogin: profile.LastLogin,
	}, nil
}

// ClearCache drops the caller's cached entries, or everything when uid
// is empty.
func (s *UserService) ClearCache(ctx context.Context, uid string) {
	if uid == "" {
		s.cache.Clear(ctx)
		return
	}
	s.cache.InvalidateUser(ctx, uid)
}

// TouchLastLogin is best-effort; failures are logged, never surfaced.
func (s *UserService) TouchLastLogin(ctx context.Context, uid string) {
	if err := s.repo.TouchLastLogin(ctx, uid); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Warn().Err(err).Str("uid", uid).Msg("failed to touch last login")
	}
}
