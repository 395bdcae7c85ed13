package ports

import (
	"context"
	"time"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// MetricsRepository persists batched usage and performance events and serves
// the aggregation queries behind the monitoring intents.
type MetricsRepository interface {
	// InsertUserActions writes the batch as a single operation.
	InsertUserActions(ctx context.Context, events []domain.UserActionEvent) error
	// InsertPerformance writes the batch as a single operation.
	InsertPerformance(ctx context.Context, events []domain.PerformanceEvent) error

	UserActionsSince(ctx context.Context, since time.Time) ([]domain.UserActionEvent, error)
	PerformanceSince(ctx context.Context, since time.Time) ([]domain.PerformanceEvent, error)
	// UserActionsByUser returns up to limit events for one user, newest first.
	UserActionsByUser(ctx context.Context, userID string, since time.Time, limit int) ([]domain.UserActionEvent, error)

	// DeleteOlderThan removes aged events from both collections and returns
	// the number deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// MetricsRecorder is the buffered, non-blocking recording side consumed by
// the dispatcher and services.
type MetricsRecorder interface {
	RecordUserAction(ctx context.Context, userID, action string, success bool, duration time.Duration, metadata map[string]any)
	RecordPerformance(ctx context.Context, functionName string, duration time.Duration, success bool, userID string)
}
