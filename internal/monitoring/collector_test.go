package monitoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubMetricsRepo struct {
	mu        sync.Mutex
	actions   []domain.UserActionEvent
	perf      []domain.PerformanceEvent
	insertErr error // if set, inserts return this error
	batches   int   // number of InsertUserActions calls that succeeded
}

func (r *stubMetricsRepo) InsertUserActions(_ context.Context, events []domain.UserActionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.actions = append(r.actions, events...)
	r.batches++
	return nil
}

func (r *stubMetricsRepo) InsertPerformance(_ context.Context, events []domain.PerformanceEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.perf = append(r.perf, events...)
	return nil
}

func (r *stubMetricsRepo) UserActionsSince(_ context.Context, _ time.Time) ([]domain.UserActionEvent, error) {
	return nil, nil
}

func (r *stubMetricsRepo) PerformanceSince(_ context.Context, _ time.Time) ([]domain.PerformanceEvent, error) {
	return nil, nil
}

func (r *stubMetricsRepo) UserActionsByUser(_ context.Context, _ string, _ time.Time, _ int) ([]domain.UserActionEvent, error) {
	return nil, nil
}

func (r *stubMetricsRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *stubMetricsRepo) actionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actions)
}

func (r *stubMetricsRepo) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertErr = err
}

// waitFor polls cond until it returns true or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCollectorBuffersUntilThreshold(t *testing.T) {
	repo := &stubMetricsRepo{}
	c := NewCollector(repo, 5, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		c.RecordUserAction(ctx, "u1", "registrarDespesa", true, time.Millisecond, nil)
	}
	if got := repo.actionCount(); got != 0 {
		t.Fatalf("flushed %d events below threshold, want 0", got)
	}

	// The fifth event crosses the threshold and triggers an async flush.
	c.RecordUserAction(ctx, "u1", "registrarDespesa", true, time.Millisecond, nil)
	waitFor(t, func() bool { return repo.actionCount() == 5 })
}

func TestCollectorFlushAll(t *testing.T) {
	repo := &stubMetricsRepo{}
	c := NewCollector(repo, 100, zerolog.Nop())
	ctx := context.Background()

	c.RecordUserAction(ctx, "u1", "listarDespesas", true, time.Millisecond, nil)
	c.RecordPerformance(ctx, "assistente", 10*time.Millisecond, true, "u1")

	if err := c.FlushAll(ctx); err != nil {
		t.Fatalf("FlushAll: %v", err)
	}
	if got := repo.actionCount(); got != 1 {
		t.Fatalf("got %d actions, want 1", got)
	}
	repo.mu.Lock()
	perf := len(repo.perf)
	repo.mu.Unlock()
	if perf != 1 {
		t.Fatalf("got %d performance events, want 1", perf)
	}
}

func TestCollectorRequeuesFailedBatch(t *testing.T) {
	repo := &stubMetricsRepo{}
	repo.setErr(errors.New("store down"))
	c := NewCollector(repo, 100, zerolog.Nop())
	ctx := context.Background()

	c.RecordUserAction(ctx, "u1", "registrarPedido", true, time.Millisecond, nil)
	if err := c.FlushAll(ctx); err == nil {
		t.Fatal("expected flush error while store is down")
	}
	if got := repo.actionCount(); got != 0 {
		t.Fatalf("failed flush persisted %d events", got)
	}

	// One more event arrives, then the store recovers: both the requeued
	// and the new event must flush, each exactly once.
	c.RecordUserAction(ctx, "u1", "listarPedidos", true, time.Millisecond, nil)
	repo.setErr(nil)
	if err := c.FlushAll(ctx); err != nil {
		t.Fatalf("FlushAll after recovery: %v", err)
	}
	if got := repo.actionCount(); got != 2 {
		t.Fatalf("got %d actions after recovery, want 2", got)
	}

	// Nothing left to flush.
	if err := c.FlushAll(ctx); err != nil {
		t.Fatalf("FlushAll on empty buffers: %v", err)
	}
	if got := repo.actionCount(); got != 2 {
		t.Fatalf("events double-flushed: got %d, want 2", got)
	}
}

func TestCollectorPreservesOrderOnRequeue(t *testing.T) {
	repo := &stubMetricsRepo{}
	repo.setErr(errors.New("store down"))
	c := NewCollector(repo, 100, zerolog.Nop())
	ctx := context.Background()

	c.RecordUserAction(ctx, "u1", "first", true, time.Millisecond, nil)
	_ = c.FlushAll(ctx)
	c.RecordUserAction(ctx, "u1", "second", true, time.Millisecond, nil)

	repo.setErr(nil)
	if err := c.FlushAll(ctx); err != nil {
		t.Fatalf("FlushAll: %v", err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(repo.actions))
	}
	if repo.actions[0].Action != "first" || repo.actions[1].Action != "second" {
		t.Fatalf("requeue broke ordering: %q then %q", repo.actions[0].Action, repo.actions[1].Action)
	}
}
