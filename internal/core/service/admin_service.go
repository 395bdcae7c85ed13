package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

const (
	defaultAdminUserLimit = 100
	defaultAdminLogLimit  = 50
)

// AdminDashboard is the aggregate snapshot behind getAdminDashboard.
type AdminDashboard struct {
	TotalUsers          int64 `json:"totalUsers"`
	NewUsersLast7Days   int64 `json:"newUsersLast7Days"`
	OnboardingStarted   int64 `json:"onboardingStarted"`
	OnboardingCompleted int64 `json:"onboardingCompleted"`
}

// UserDetails joins a user's profile with their recent activity.
type UserDetails struct {
	Profile       *domain.UserProfile      `json:"profile"`
	RecentActions []domain.UserActionEvent `json:"recentActions"`
}

type AdminService struct {
	repo       ports.AdminRepository
	users      ports.UserRepository
	onboarding ports.OnboardingRepository
	metrics    ports.MetricsRepository
	userSvc    *UserService
	// adminEmails is the allow-list accepted by setupSuperAdmin, lowercase.
	adminEmails map[string]struct{}
	logger      zerolog.Logger
}

func NewAdminService(repo ports.AdminRepository, users ports.UserRepository, onboarding ports.OnboardingRepository, metrics ports.MetricsRepository, userSvc *UserService, adminEmails []string, logger zerolog.Logger) *AdminService {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowed[email] = struct{}{}
		}
	}
	return &AdminService{
		repo:        repo,
		users:       users,
		onboarding:  onboarding,
		metrics:     metrics,
		userSvc:     userSvc,
		adminEmails: allowed,
		logger:      logger,
	}
}

// IsAdmin reports whether uid is the configured super admin.
func (s *AdminService) IsAdmin(ctx context.Context, uid string) (bool, error) {
	admin, err := s.repo.SuperAdminUID(ctx)
	if err != nil {
		return false, err
	}
	return admin != "" && admin == uid, nil
}

// RequireAdmin rejects callers other than the super admin. Exposed for
// intents gated outside this service (cache and monitoring management).
func (s *AdminService) RequireAdmin(ctx context.Context, uid string) error {
	return s.requireAdmin(ctx, uid)
}

func (s *AdminService) requireAdmin(ctx context.Context, uid string) error {
	ok, err := s.IsAdmin(ctx, uid)
	if err != nil {
		return err
	}
	if !ok {
		return domain.PermissionDenied("Acesso negado - apenas administradores")
	}
	return nil
}

// SetupSuperAdmin claims the super-admin slot for the caller. Only the
// first allow-listed email succeeds; afterwards the slot is immutable.
func (s *AdminService) SetupSuperAdmin(ctx context.Context, uid, email string) error {
	if _, ok := s.adminEmails[strings.ToLower(strings.TrimSpace(email))]; !ok {
		return domain.PermissionDenied("Email não autorizado para admin")
	}

	existing, err := s.repo.SuperAdminUID(ctx)
	if err != nil {
		return err
	}
	if existing != "" {
		if existing == uid {
			return nil
		}
		return domain.PermissionDenied("Super admin já configurado")
	}

	if err := s.repo.SetSuperAdmin(ctx, uid, email); err != nil {
		return err
	}
	s.logger.Info().Str("uid", uid).Str("email", email).Msg("super admin configured")
	return s.audit(ctx, uid, "setup_super_admin", "", map[string]any{"email": email})
}

func (s *AdminService) Dashboard(ctx context.Context, uid string) (*AdminDashboard, error) {
	if err := s.requireAdmin(ctx, uid); err != nil {
		return nil, err
	}

	total, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.users.CountCreatedSince(ctx, time.Now().UTC().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	started, err := s.onboarding.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.onboarding.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalUsers:          total,
		NewUsersLast7Days:   recent,
		OnboardingStarted:   started,
		OnboardingCompleted: completed,
	}, nil
}

func (s *AdminService) ListUsers(ctx context.Context, uid string, limit int) ([]*domain.UserProfile, error) {
	if err := s.requireAdmin(ctx, uid); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultAdminUserLimit {
		limit = defaultAdminUserLimit
	}
	return s.users.ListAll(ctx, limit)
}

func (s *AdminService) UserDetails(ctx context.Context, uid, targetUID string) (*UserDetails, error) {
	if err := s.requireAdmin(ctx, uid); err != nil {
		return nil, err
	}

	profile, err := s.users.FindByUID(ctx, targetUID)
	if err != nil {
		return nil, err
	}
	actions, err := s.metrics.UserActionsByUser(ctx, targetUID, time.Now().UTC().AddDate(0, 0, -30), defaultAdminLogLimit)
	if err != nil {
		return nil, err
	}
	return &UserDetails{Profile: profile, RecentActions: actions}, nil
}

// UpdateUserPlan changes another user's plan and records the change in
// the audit log.
func (s *AdminService) UpdateUserPlan(ctx context.Context, uid, targetUID string, plan domain.PlanTier) error {
	if err := s.requireAdmin(ctx, uid); err != nil {
		return err
	}
	if err := s.userSvc.UpdatePlan(ctx, targetUID, plan); err != nil {
		return err
	}
	return s.audit(ctx, uid, "update_user_plan", targetUID, map[string]any{"plan": string(plan)})
}

func (s *AdminService) Logs(ctx context.Context, uid string, limit int) ([]domain.AdminAction, error) {
	if err := s.requireAdmin(ctx, uid); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultAdminLogLimit {
		limit = defaultAdminLogLimit
	}
	return s.repo.ListActions(ctx, limit)
}

func (s *AdminService) audit(ctx context.Context, adminUID, action, targetUID string, details map[string]any) error {
	entry := &domain.AdminAction{
		AdminUID:  adminUID,
		Action:    action,
		TargetUID: targetUID,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.AppendAction(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("failed to append admin audit entry")
		return err
	}
	return nil
}
