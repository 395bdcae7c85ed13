package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

const collectionBackups = "backups"

type BackupRepository struct {
	col *mongo.Collection
}

func NewBackupRepository(db *mongo.Database) *BackupRepository {
	return &BackupRepository{col: db.Collection(collectionBackups)}
}

func (r *BackupRepository) Insert(ctx context.Context, record *domain.BackupRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, record)
	return err
}

// List returns up to limit backup records, newest first.
func (r *BackupRepository) List(ctx context.Context, limit int) ([]domain.BackupRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var records []domain.BackupRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *BackupRepository) FindByBackupID(ctx context.Context, backupID string) (*domain.BackupRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var record domain.BackupRecord
	err := r.col.FindOne(ctx, bson.M{"backup_id": backupID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBackupNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *BackupRepository) Delete(ctx context.Context, backupID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"backup_id": backupID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrBackupNotFound
	}
	return nil
}

// DeleteOlderThan removes records past the retention window.
func (r *BackupRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
