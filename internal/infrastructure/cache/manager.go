package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/api/metrics"
	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

// Default TTL per entity kind.
const (
	profileTTL  = 5 * time.Minute
	expensesTTL = 3 * time.Minute
	ordersTTL   = 3 * time.Minute
	recipesTTL  = 10 * time.Minute
	analysisTTL = time.Hour
)

// Manager fronts the two-tier cache: an optional remote Backend plus the
// in-process MemoryCache. Every remote failure is absorbed here — logged,
// counted, and served from memory instead. The cache is never the reason a
// request fails.
type Manager struct {
	remote Backend // nil when no shared cache is configured
	local  *MemoryCache
	log    zerolog.Logger
}

// NewManager creates a Manager. remote may be nil, in which case all traffic
// goes to the in-process store.
func NewManager(remote Backend, local *MemoryCache, log zerolog.Logger) *Manager {
	if local == nil {
		local = NewMemoryCache(0)
	}
	return &Manager{remote: remote, local: local, log: log}
}

// get resolves key from the remote backend when configured, falling back to
// memory on any error.
func (m *Manager) get(ctx context.Context, key string) ([]byte, bool) {
	val, ok := m.rawGet(ctx, key)
	if ok {
		metrics.CacheOpsTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheOpsTotal.WithLabelValues("miss").Inc()
	}
	return val, ok
}

func (m *Manager) rawGet(ctx context.Context, key string) ([]byte, bool) {
	if m.remote != nil {
		val, ok, err := m.remote.Get(ctx, key)
		if err == nil {
			return val, ok
		}
		metrics.CacheFallbacksTotal.WithLabelValues("get").Inc()
		m.log.Warn().Err(err).Str("key", key).Msg("remote cache get failed, using memory fallback")
	}
	return m.local.Get(key)
}

func (m *Manager) set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if m.remote != nil {
		err := m.remote.Set(ctx, key, value, ttl)
		if err == nil {
			return
		}
		metrics.CacheFallbacksTotal.WithLabelValues("set").Inc()
		m.log.Warn().Err(err).Str("key", key).Msg("remote cache set failed, using memory fallback")
	}
	m.local.Set(key, value, ttl)
}

func (m *Manager) delete(ctx context.Context, key string) bool {
	if m.remote != nil {
		deleted, err := m.remote.Delete(ctx, key)
		if err == nil {
			// Also drop any fallback copy written during an earlier outage.
			if m.local.Delete(key) {
				deleted = true
			}
			return deleted
		}
		metrics.CacheFallbacksTotal.WithLabelValues("delete").Inc()
		m.log.Warn().Err(err).Str("key", key).Msg("remote cache delete failed, using memory fallback")
	}
	return m.local.Delete(key)
}

// setJSON marshals value and stores it; marshal failures are swallowed —
// the entry is simply not cached.
func (m *Manager) setJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("cache marshal failed, entry not cached")
		return
	}
	m.set(ctx, key, data, ttl)
}

// getJSON resolves key and unmarshals into out. Corrupt entries are treated
// as misses.
func (m *Manager) getJSON(ctx context.Context, key string, out any) bool {
	data, ok := m.get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("cache unmarshal failed, treating as miss")
		m.delete(ctx, key)
		return false
	}
	return true
}

// ── Key templates ─────────────────────────────────────────────────────────────

func profileKey(uid string) string  { return "user_profile:" + uid }
func expensesKey(uid string) string { return "expenses:" + uid }
func ordersKey(uid string) string   { return "orders:" + uid }
func recipesKey(uid string) string  { return "recipes:" + uid }

// analysisKey dedups identical questions per user: the same (uid, normalized
// query) always lands on the same key; different users never share one.
func analysisKey(uid, query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return fmt.Sprintf("analysis:%s:%s", uid, hex.EncodeToString(sum[:]))
}

// ── Typed helpers ─────────────────────────────────────────────────────────────

func (m *Manager) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, bool) {
	var p domain.UserProfile
	if !m.getJSON(ctx, profileKey(uid), &p) {
		return nil, false
	}
	return &p, true
}

func (m *Manager) SetProfile(ctx context.Context, uid string, profile *domain.UserProfile) {
	m.setJSON(ctx, profileKey(uid), profile, profileTTL)
}

func (m *Manager) DeleteProfile(ctx context.Context, uid string) bool {
	return m.delete(ctx, profileKey(uid))
}

func (m *Manager) GetExpenses(ctx context.Context, uid string) ([]domain.Expense, bool) {
	var es []domain.Expense
	if !m.getJSON(ctx, expensesKey(uid), &es) {
		return nil, false
	}
	return es, true
}

func (m *Manager) SetExpenses(ctx context.Context, uid string, expenses []domain.Expense) {
	m.setJSON(ctx, expensesKey(uid), expenses, expensesTTL)
}

func (m *Manager) DeleteExpenses(ctx context.Context, uid string) bool {
	return m.delete(ctx, expensesKey(uid))
}

func (m *Manager) GetOrders(ctx context.Context, uid string) ([]domain.Order, bool) {
	var os []domain.Order
	if !m.getJSON(ctx, ordersKey(uid), &os) {
		return nil, false
	}
	return os, true
}

func (m *Manager) SetOrders(ctx context.Context, uid string, orders []domain.Order) {
	m.setJSON(ctx, ordersKey(uid), orders, ordersTTL)
}

func (m *Manager) DeleteOrders(ctx context.Context, uid string) bool {
	return m.delete(ctx, ordersKey(uid))
}

func (m *Manager) GetRecipes(ctx context.Context, uid string) ([]domain.Recipe, bool) {
	var rs []domain.Recipe
	if !m.getJSON(ctx, recipesKey(uid), &rs) {
		return nil, false
	}
	return rs, true
}

func (m *Manager) SetRecipes(ctx context.Context, uid string, recipes []domain.Recipe) {
	m.setJSON(ctx, recipesKey(uid), recipes, recipesTTL)
}

func (m *Manager) DeleteRecipes(ctx context.Context, uid string) bool {
	return m.delete(ctx, recipesKey(uid))
}

func (m *Manager) GetAnalysis(ctx context.Context, uid, query string) (*domain.AnalysisResult, bool) {
	var r domain.AnalysisResult
	if !m.getJSON(ctx, analysisKey(uid, query), &r) {
		return nil, false
	}
	return &r, true
}

func (m *Manager) SetAnalysis(ctx context.Context, uid, query string, result *domain.AnalysisResult) {
	m.setJSON(ctx, analysisKey(uid, query), result, analysisTTL)
}

// InvalidateUser drops all per-user list and profile entries. Analysis
// entries are left to expire on their own TTL.
func (m *Manager) InvalidateUser(ctx context.Context, uid string) {
	m.delete(ctx, profileKey(uid))
	m.delete(ctx, expensesKey(uid))
	m.delete(ctx, ordersKey(uid))
	m.delete(ctx, recipesKey(uid))
	m.log.Info().Str("uid", uid).Msg("user cache invalidated")
}

func (m *Manager) Stats(ctx context.Context) ports.CacheStats {
	count, capacity := m.local.Stats()
	remote := "not_configured"
	if m.remote != nil {
		remote = "connected"
	}
	return ports.CacheStats{Count: count, Capacity: capacity, Remote: remote}
}

// Clear drops every entry in both tiers.
func (m *Manager) Clear(ctx context.Context) {
	if m.remote != nil {
		if err := m.remote.Clear(ctx); err != nil {
			metrics.CacheFallbacksTotal.WithLabelValues("clear").Inc()
			m.log.Warn().Err(err).Msg("remote cache clear failed")
		}
	}
	m.local.Clear()
	m.log.Info().Msg("cache cleared")
}
