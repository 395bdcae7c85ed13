package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	profiles    map[string]*domain.UserProfile
	updates     []ports.ProfileUpdate
	lastTouched string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{profiles: make(map[string]*domain.UserProfile)}
}

func (r *stubUserRepo) Create(_ context.Context, p *domain.UserProfile) error {
	clone := *p
	r.profiles[p.UID] = &clone
	return nil
}

func (r *stubUserRepo) FindByUID(_ context.Context, uid string) (*domain.UserProfile, error) {
	p, ok := r.profiles[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, uid string, update ports.ProfileUpdate) error {
	p, ok := r.profiles[uid]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.updates = append(r.updates, update)
	if update.DisplayName != nil {
		p.DisplayName = *update.DisplayName
	}
	if update.Plan != nil {
		p.Plan = *update.Plan
	}
	return nil
}

func (r *stubUserRepo) TouchLastLogin(_ context.Context, uid string) error {
	if _, ok := r.profiles[uid]; !ok {
		return domain.ErrUserNotFound
	}
	r.lastTouched = uid
	return nil
}

func (r *stubUserRepo) ListAll(_ context.Context, limit int) ([]*domain.UserProfile, error) {
	out := make([]*domain.UserProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		if len(out) >= limit {
			break
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.profiles)), nil
}

func (r *stubUserRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, p := range r.profiles {
		if p.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

type stubOrderRepo struct {
	orders    []domain.Order
	createErr error
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orders = append(r.orders, *o)
	return nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, uid string, limit int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == uid && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) CountByUser(_ context.Context, uid string) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.UserID == uid {
			n++
		}
	}
	return n, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, uid, id string, status domain.OrderStatus) error {
	for i, o := range r.orders {
		if o.UserID == uid && o.ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

type stubRecipeRepo struct {
	recipes []domain.Recipe
}

func (r *stubRecipeRepo) Create(_ context.Context, recipe *domain.Recipe) error {
	r.recipes = append(r.recipes, *recipe)
	return nil
}

func (r *stubRecipeRepo) ListByUser(_ context.Context, uid string) ([]domain.Recipe, error) {
	var out []domain.Recipe
	for _, rec := range r.recipes {
		if rec.UserID == uid {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubRecipeRepo) CountByUser(_ context.Context, uid string) (int64, error) {
	var n int64
	for _, rec := range r.recipes {
		if rec.UserID == uid {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func newTestLimiter(users *stubUserRepo, expenses *stubExpenseRepo) *PlanLimiter {
	return NewPlanLimiter(users, expenses, &stubOrderRepo{}, &stubRecipeRepo{}, zerolog.Nop())
}

func seedUser(users *stubUserRepo, uid string, plan domain.PlanTier) {
	users.profiles[uid] = &domain.UserProfile{UID: uid, Plan: plan}
}

func seedExpenses(expenses *stubExpenseRepo, uid string, n int) {
	for i := 0; i < n; i++ {
		expenses.expenses = append(expenses.expenses, domain.Expense{UserID: uid})
	}
}

func TestCheckLimitBelowCeiling(t *testing.T) {
	users := newStubUserRepo()
	expenses := newStubExpenseRepo()
	seedUser(users, "u1", domain.PlanFree)
	seedExpenses(expenses, "u1", 99)

	ok, err := newTestLimiter(users, expenses).CheckLimit(context.Background(), "u1", domain.ActionCreateExpense)
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if !ok {
		t.Fatal("99 of 100 expenses must still be allowed")
	}
}

func TestCheckLimitAtCeiling(t *testing.T) {
	users := newStubUserRepo()
	expenses := newStubExpenseRepo()
	seedUser(users, "u1", domain.PlanFree)
	seedExpenses(expenses, "u1", 100)

	ok, err := newTestLimiter(users, expenses).CheckLimit(context.Background(), "u1", domain.ActionCreateExpense)
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if ok {
		t.Fatal("100 of 100 expenses must be denied")
	}
}

func TestCheckLimitEnterpriseUnlimited(t *testing.T) {
	users := newStubUserRepo()
	expenses := newStubExpenseRepo()
	seedUser(users, "u1", domain.PlanEnterprise)
	seedExpenses(expenses, "u1", 100000)

	ok, err := newTestLimiter(users, expenses).CheckLimit(context.Background(), "u1", domain.ActionCreateExpense)
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if !ok {
		t.Fatal("enterprise plan must never hit a ceiling")
	}
}

func TestCheckLimitUnknownUserDenied(t *testing.T) {
	users := newStubUserRepo()
	expenses := newStubExpenseRepo()

	ok, err := newTestLimiter(users, expenses).CheckLimit(context.Background(), "ghost", domain.ActionCreateExpense)
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if ok {
		t.Fatal("a user without a profile must be denied")
	}
}

func TestCheckLimitUnknownPlanFallsBackToFree(t *testing.T) {
	users := newStubUserRepo()
	expenses := newStubExpenseRepo()
	seedUser(users, "u1", domain.PlanTier("legacy"))
	seedExpenses(expenses, "u1", 100)

	ok, err := newTestLimiter(users, expenses).CheckLimit(context.Background(), "u1", domain.ActionCreateExpense)
	if err != nil {
		t.Fatalf("CheckLimit: %v", err)
	}
	if ok {
		t.Fatal("unknown tiers must be capped at the free ceiling")
	}
}
