package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

const (
	collectionAdminConfig  = "admin_config"
	collectionAdminActions = "admin_actions"

	superAdminDocID = "super_admin"
)

// AdminRepository stores the super-admin designation plus the append-only
// administrative audit log.
type AdminRepository struct {
	config  *mongo.Collection
	actions *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{
		config:  db.Collection(collectionAdminConfig),
		actions: db.Collection(collectionAdminActions),
	}
}

type superAdminDoc struct {
	ID      string    `bson:"_id"`
	UID     string    `bson:"uid"`
	Email   string    `bson:"email"`
	SetupAt time.Time `bson:"setup_at"`
}

// SuperAdminUID returns the configured super admin, or "" when none is set.
func (r *AdminRepository) SuperAdminUID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc superAdminDoc
	err := r.config.FindOne(ctx, bson.M{"_id": superAdminDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.UID, nil
}

func (r *AdminRepository) SetSuperAdmin(ctx context.Context, uid, email string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := superAdminDoc{ID: superAdminDocID, UID: uid, Email: email, SetupAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	_, err := r.config.ReplaceOne(ctx, bson.M{"_id": superAdminDocID}, doc, opts)
	return err
}

func (r *AdminRepository) AppendAction(ctx context.Context, action *domain.AdminAction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	_, err := r.actions.InsertOne(ctx, action)
	return err
}

// ListActions returns up to limit audit entries, newest first.
func (r *AdminRepository) ListActions(ctx context.Context, limit int) ([]domain.AdminAction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.actions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var actions []domain.AdminAction
	if err := cur.All(ctx, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}
