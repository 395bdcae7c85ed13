package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAdminRepo struct {
	superAdmin string
	actions    []domain.AdminAction
}

func (r *stubAdminRepo) SuperAdminUID(_ context.Context) (string, error) {
	return r.superAdmin, nil
}

func (r *stubAdminRepo) SetSuperAdmin(_ context.Context, uid, _ string) error {
	r.superAdmin = uid
	return nil
}

func (r *stubAdminRepo) AppendAction(_ context.Context, action *domain.AdminAction) error {
	r.actions = append(r.actions, *action)
	return nil
}

func (r *stubAdminRepo) ListActions(_ context.Context, limit int) ([]domain.AdminAction, error) {
	if limit > len(r.actions) {
		limit = len(r.actions)
	}
	return r.actions[:limit], nil
}

type stubMetricsStore struct {
	userActions []domain.UserActionEvent
}

func (r *stubMetricsStore) InsertUserActions(_ context.Context, events []domain.UserActionEvent) error {
	r.userActions = append(r.userActions, events...)
	return nil
}

func (r *stubMetricsStore) InsertPerformance(_ context.Context, _ []domain.PerformanceEvent) error {
	return nil
}

func (r *stubMetricsStore) UserActionsSince(_ context.Context, _ time.Time) ([]domain.UserActionEvent, error) {
	return r.userActions, nil
}

func (r *stubMetricsStore) PerformanceSince(_ context.Context, _ time.Time) ([]domain.PerformanceEvent, error) {
	return nil, nil
}

func (r *stubMetricsStore) UserActionsByUser(_ context.Context, uid string, _ time.Time, limit int) ([]domain.UserActionEvent, error) {
	var out []domain.UserActionEvent
	for _, e := range r.userActions {
		if e.UserID == uid && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubMetricsStore) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func newTestAdminService(adminRepo *stubAdminRepo, users *stubUserRepo) *AdminService {
	userSvc := NewUserService(users, newStubCache(), zerolog.Nop())
	return NewAdminService(
		adminRepo, users, newStubOnboardingRepo(), &stubMetricsStore{},
		userSvc, []string{"dona@confeitaria.com"}, zerolog.Nop(),
	)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSetupSuperAdminAllowList(t *testing.T) {
	adminRepo := &stubAdminRepo{}
	users := newStubUserRepo()
	svc := newTestAdminService(adminRepo, users)
	ctx := context.Background()

	err := svc.SetupSuperAdmin(ctx, "u1", "intruso@example.com")
	ce, ok := domain.AsCallError(err)
	if !ok || ce.Kind != domain.KindPermissionDenied {
		t.Fatalf("expected permission-denied for unlisted email, got %v", err)
	}

	// Allow-listed email claims the slot; matching is case-insensitive.
	if err := svc.SetupSuperAdmin(ctx, "u1", "Dona@Confeitaria.com"); err != nil {
		t.Fatalf("SetupSuperAdmin: %v", err)
	}
	if adminRepo.superAdmin != "u1" {
		t.Fatalf("super admin is %q, want u1", adminRepo.superAdmin)
	}

	// Re-running for the same uid is a no-op; a second uid is rejected.
	if err := svc.SetupSuperAdmin(ctx, "u1", "dona@confeitaria.com"); err != nil {
		t.Fatalf("idempotent setup failed: %v", err)
	}
	err = svc.SetupSuperAdmin(ctx, "u2", "dona@confeitaria.com")
	if ce, ok := domain.AsCallError(err); !ok || ce.Kind != domain.KindPermissionDenied {
		t.Fatalf("expected permission-denied for second claimant, got %v", err)
	}
}

func TestAdminGate(t *testing.T) {
	adminRepo := &stubAdminRepo{superAdmin: "admin1"}
	users := newStubUserRepo()
	svc := newTestAdminService(adminRepo, users)
	ctx := context.Background()

	_, err := svc.Dashboard(ctx, "mortal")
	ce, ok := domain.AsCallError(err)
	if !ok || ce.Kind != domain.KindPermissionDenied {
		t.Fatalf("expected permission-denied, got %v", err)
	}
	if ce.Message != "Acesso negado - apenas administradores" {
		t.Fatalf("unexpected message %q", ce.Message)
	}

	if _, err := svc.Dashboard(ctx, "admin1"); err != nil {
		t.Fatalf("Dashboard as admin: %v", err)
	}
}

func TestAdminUpdateUserPlanAudited(t *testing.T) {
	adminRepo := &stubAdminRepo{superAdmin: "admin1"}
	users := newStubUserRepo()
	seedUser(users, "u1", domain.PlanFree)
	svc := newTestAdminService(adminRepo, users)
	ctx := context.Background()

	if err := svc.UpdateUserPlan(ctx, "admin1", "u1", domain.PlanPro); err != nil {
		t.Fatalf("UpdateUserPlan: %v", err)
	}
	if users.profiles["u1"].Plan != domain.PlanPro {
		t.Fatal("target plan not updated")
	}
	if len(adminRepo.actions) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(adminRepo.actions))
	}
	entry := adminRepo.actions[0]
	if entry.AdminUID != "admin1" || entry.TargetUID != "u1" || entry.Action != "update_user_plan" {
		t.Fatalf("bad audit entry: %+v", entry)
	}
}

func TestIsAdmin(t *testing.T) {
	svc := newTestAdminService(&stubAdminRepo{superAdmin: "admin1"}, newStubUserRepo())
	ctx := context.Background()

	if ok, _ := svc.IsAdmin(ctx, "admin1"); !ok {
		t.Fatal("configured super admin not recognized")
	}
	if ok, _ := svc.IsAdmin(ctx, "u1"); ok {
		t.Fatal("regular user recognized as admin")
	}

	// No super admin configured: nobody is admin, including empty uid.
	none := newTestAdminService(&stubAdminRepo{}, newStubUserRepo())
	if ok, _ := none.IsAdmin(ctx, ""); ok {
		t.Fatal("empty uid must never match an unconfigured slot")
	}
}
