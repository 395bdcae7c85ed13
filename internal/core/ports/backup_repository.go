package ports

import (
	"context"
	"time"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
)

// BackupRepository persists backup job metadata.
type BackupRepository interface {
	Insert(ctx context.Context, record *domain.BackupRecord) error
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]domain.BackupRecord, error)
	// FindByBackupID returns domain.ErrBackupNotFound when absent.
	FindByBackupID(ctx context.Context, backupID string) (*domain.BackupRecord, error)
	Delete(ctx context.Context, backupID string) error
	// DeleteOlderThan removes records past the retention window and returns
	// the number deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
