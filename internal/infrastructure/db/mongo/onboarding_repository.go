package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

const collectionOnboarding = "onboarding_sessions"

type OnboardingRepository struct {
	col *mongo.Collection
}

func NewOnboardingRepository(db *mongo.Database) *OnboardingRepository {
	return &OnboardingRepository{col: db.Collection(collectionOnboarding)}
}

func (r *OnboardingRepository) Find(ctx context.Context, userID string) (*domain.OnboardingSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var session domain.OnboardingSession
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOnboardingNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Save upserts the session keyed by user id.
func (r *OnboardingRepository) Save(ctx context.Context, session *domain.OnboardingSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": session.UserID}, session, opts)
	return err
}

func (r *OnboardingRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *OnboardingRepository) CountCompleted(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"is_completed": true})
}
