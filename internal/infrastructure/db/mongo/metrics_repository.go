package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

const (
	collectionMetrics     = "metrics"
	collectionPerformance = "performance"
)

// MetricsRepository persists batched metric events in two append-only
// collections.
type MetricsRepository struct {
	actions *mongo.Collection
	perf    *mongo.Collection
}

func NewMetricsRepository(db *mongo.Database) *MetricsRepository {
	return &MetricsRepository{
		actions: db.Collection(collectionMetrics),
		perf:    db.Collection(collectionPerformance),
	}
}

// InsertUserActions writes the whole batch in one operation.
func (r *MetricsRepository) InsertUserActions(ctx context.Context, events []domain.UserActionEvent) error {
	if len(events) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, len(events))
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
		}
		docs[i] = events[i]
	}
	_, err := r.actions.InsertMany(ctx, docs)
	return err
}

// InsertPerformance writes the whole batch in one operation.
func (r *MetricsRepository) InsertPerformance(ctx context.Context, events []domain.PerformanceEvent) error {
	if len(events) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, len(events))
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
		}
		docs[i] = events[i]
	}
	_, err := r.perf.InsertMany(ctx, docs)
	return err
}

func (r *MetricsRepository) UserActionsSince(ctx context.Context, since time.Time) ([]domain.UserActionEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.actions.Find(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return nil, err
	}
	var events []domain.UserActionEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *MetricsRepository) PerformanceSince(ctx context.Context, since time.Time) ([]domain.PerformanceEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.perf.Find(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return nil, err
	}
	var events []domain.PerformanceEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UserActionsByUser returns up to limit events for one user, newest first.
func (r *MetricsRepository) UserActionsByUser(ctx context.Context, userID string, since time.Time, limit int) ([]domain.UserActionEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "timestamp": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.actions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var events []domain.UserActionEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteOlderThan removes aged events from both collections.
func (r *MetricsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{"timestamp": bson.M{"$lt": cutoff}}
	actionsRes, err := r.actions.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	perfRes, err := r.perf.DeleteMany(ctx, filter)
	if err != nil {
		return actionsRes.DeletedCount, err
	}
	return actionsRes.DeletedCount + perfRes.DeletedCount, nil
}

// EnsureIndexes creates necessary indexes on both metric collections.
func (r *MetricsRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	actionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
	if _, err := r.actions.Indexes().CreateMany(ctx, actionIndexes); err != nil {
		return err
	}

	perfIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "function_name", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
	_, err := r.perf.Indexes().CreateMany(ctx, perfIndexes)
	return err
}
