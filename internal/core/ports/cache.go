package ports

import (
	"context"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// CacheStats is the introspection snapshot returned by getCacheStats.
type CacheStats struct {
	Count    int    `json:"count"`
	Capacity int    `json:"capacity"`
	Remote   string `json:"remote"` // "connected" or "not_configured"
}

// Cache is the typed, per-entity facade over the two-tier cache. A miss is
// reported with ok=false; cache failures never surface to callers — the
// implementation degrades to its in-process store instead.
type Cache interface {
	GetProfile(ctx context.Context, uid string) (*domain.UserProfile, bool)
	SetProfile(ctx context.Context, uid string, profile *domain.UserProfile)
	DeleteProfile(ctx context.Context, uid string) bool

	GetExpenses(ctx context.Context, uid string) ([]domain.Expense, bool)
	SetExpenses(ctx context.Context, uid string, expenses []domain.Expense)
	DeleteExpenses(ctx context.Context, uid string) bool

	GetOrders(ctx context.Context, uid string) ([]domain.Order, bool)
	SetOrders(ctx context.Context, uid string, orders []domain.Order)
	DeleteOrders(ctx context.Context, uid string) bool

	GetRecipes(ctx context.Context, uid string) ([]domain.Recipe, bool)
	SetRecipes(ctx context.Context, uid string, recipes []domain.Recipe)
	DeleteRecipes(ctx context.Context, uid string) bool

	GetAnalysis(ctx context.Context, uid, query string) (*domain.AnalysisResult, bool)
	SetAnalysis(ctx context.Context, uid, query string, result *domain.AnalysisResult)

	// InvalidateUser drops the profile, expense, order, and recipe entries
	// of one user. Deletes are idempotent, so no rollback is needed.
	InvalidateUser(ctx context.Context, uid string)

	Stats(ctx context.Context) CacheStats
	Clear(ctx context.Context)
}
