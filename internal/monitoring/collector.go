// Package monitoring implements the buffered metrics pipeline: user-action
// and performance events are appended to in-memory buffers and persisted in
// batches, so recording never blocks a request on the store.
package monitoring

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/api/metrics"
	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

const (
	// DefaultBufferSize is the flush threshold for each buffer.
	DefaultBufferSize = 100
	// slowCallThreshold marks performance events worth a warning.
	slowCallThreshold = 5 * time.Second
)

// Collector buffers events and flushes them as single batched writes, either
// when a buffer reaches its size threshold or on demand via FlushAll.
//
// A flush drains its buffer by swapping it for an empty one under the lock
// and writing the swapped copy outside it; events recorded mid-flush land in
// the new buffer and are neither lost nor double-counted. Failed batches are
// re-queued at the front of the buffer for the next cycle, which can grow
// the buffer without bound under a sustained store outage — an accepted
// degradation, not a crash.
type Collector struct {
	repo       ports.MetricsRepository
	log        zerolog.Logger
	bufferSize int
	now        func() time.Time

	mu      sync.Mutex
	actions []domain.UserActionEvent
	perf    []domain.PerformanceEvent
}

// NewCollector creates a Collector flushing at bufferSize events per buffer.
// bufferSize <= 0 selects DefaultBufferSize.
func NewCollector(repo ports.MetricsRepository, bufferSize int, log zerolog.Logger) *Collector {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Collector{
		repo:       repo,
		log:        log,
		bufferSize: bufferSize,
		now:        time.Now,
	}
}

// RecordUserAction appends a user-action event. The event is timestamped
// now, not at flush time. Never blocks on persistence.
func (c *Collector) RecordUserAction(ctx context.Context, userID, action string, success bool, duration time.Duration, metadata map[string]any) {
	event := domain.UserActionEvent{
		UserID:     userID,
		Action:     action,
		Timestamp:  c.now(),
		Success:    success,
		DurationMS: duration.Milliseconds(),
		Metadata:   metadata,
	}

	c.mu.Lock()
	c.actions = append(c.actions, event)
	full := len(c.actions) >= c.bufferSize
	c.mu.Unlock()

	c.log.Info().
		Str("user_id", userID).
		Str("action", action).
		Bool("success", success).
		Int64("duration_ms", event.DurationMS).
		Msg("user action")

	if full {
		go c.flushUserActions(context.WithoutCancel(ctx))
	}
}

// RecordPerformance appends a performance event. Calls slower than the
// slow-call threshold additionally emit a warning. Never blocks on
// persistence.
func (c *Collector) RecordPerformance(ctx context.Context, functionName string, duration time.Duration, success bool, userID string) {
	event := domain.PerformanceEvent{
		FunctionName: functionName,
		DurationMS:   duration.Milliseconds(),
		Timestamp:    c.now(),
		Success:      success,
		UserID:       userID,
	}

	c.mu.Lock()
	c.perf = append(c.perf, event)
	full := len(c.perf) >= c.bufferSize
	c.mu.Unlock()

	if duration > slowCallThreshold {
		c.log.Warn().
			Str("function", functionName).
			Int64("duration_ms", event.DurationMS).
			Str("user_id", userID).
			Msg("slow function")
	}

	if full {
		go c.flushPerformance(context.WithoutCancel(ctx))
	}
}

// FlushAll forces both buffers to flush regardless of size. Used by
// scheduled maintenance and shutdown.
func (c *Collector) FlushAll(ctx context.Context) error {
	if err := c.flushUserActions(ctx); err != nil {
		return err
	}
	return c.flushPerformance(ctx)
}

func (c *Collector) flushUserActions(ctx context.Context) error {
	c.mu.Lock()
	batch := c.actions
	c.actions = nil
	c.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := c.repo.InsertUserActions(ctx, batch); err != nil {
		metrics.FlushFailuresTotal.WithLabelValues("user_actions").Inc()
		c.log.Error().Err(err).Int("count", len(batch)).Msg("user action flush failed, requeueing")
		c.mu.Lock()
		c.actions = append(batch, c.actions...)
		c.mu.Unlock()
		return err
	}

	metrics.EventsFlushedTotal.WithLabelValues("user_actions").Add(float64(len(batch)))
	c.log.Info().Int("count", len(batch)).Msg("flushed user action metrics")
	return nil
}

func (c *Collector) flushPerformance(ctx context.Context) error {
	c.mu.Lock()
	batch := c.perf
	c.perf = nil
	c.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := c.repo.InsertPerformance(ctx, batch); err != nil {
		metrics.FlushFailuresTotal.WithLabelValues("performance").Inc()
		c.log.Error().Err(err).Int("count", len(batch)).Msg("performance flush failed, requeueing")
		c.mu.Lock()
		c.perf = append(batch, c.perf...)
		c.mu.Unlock()
		return err
	}

	metrics.EventsFlushedTotal.WithLabelValues("performance").Add(float64(len(batch)))
	c.log.Info().Int("count", len(batch)).Msg("flushed performance metrics")
	return nil
}

// StartFlushLoop flushes both buffers every interval until ctx is cancelled,
// with a final flush on the way out.
func (c *Collector) StartFlushLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = c.FlushAll(context.WithoutCancel(ctx))
				return
			case <-ticker.C:
				_ = c.FlushAll(ctx)
			}
		}
	}()
}
