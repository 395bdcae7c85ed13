package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

const defaultBackupListLimit = 30

// backedUpCollections is the fixed set covered by every backup job.
var backedUpCollections = []string{
	"users", "expenses", "orders", "recipes", "inventory", "onboarding",
}

// BackupStats summarizes the backup history for getBackupStats.
type BackupStats struct {
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Failed    int       `json:"failed"`
	Latest    time.Time `json:"latest,omitempty"`
}

type BackupService struct {
	repo          ports.BackupRepository
	admin         *AdminService
	retentionDays int
	logger        zerolog.Logger
}

func NewBackupService(repo ports.BackupRepository, admin *AdminService, retentionDays int, logger zerolog.Logger) *BackupService {
	return &BackupService{repo: repo, admin: admin, retentionDays: retentionDays, logger: logger}
}

// Create records a manual backup job requested by an admin. The data
// export itself runs on the hosting platform; this records the job.
func (s *BackupService) Create(ctx context.Context, uid, description string) (*domain.BackupRecord, error) {
	if err := s.admin.requireAdmin(ctx, uid); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.BackupRecord{
		ID:          uuid.NewString(),
		BackupID:    fmt.Sprintf("manual-backup-%d", now.UnixMilli()),
		Timestamp:   now,
		Status:      domain.BackupCompleted,
		Collections: backedUpCollections,
		RequestedBy: uid,
		Description: description,
		Type:        domain.BackupManual,
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info().Str("backup_id", record.BackupID).Str("uid", uid).Msg("manual backup recorded")
	return record, nil
}

// RunDaily records the scheduled backup and prunes records past the
// retention window. It is called by the maintenance loop, not an intent.
func (s *BackupService) RunDaily(ctx context.Context) error {
	now := time.Now().UTC()
	record := &domain.BackupRecord{
		ID:          uuid.NewString(),
		BackupID:    fmt.Sprintf("daily-backup-%d", now.UnixMilli()),
		Timestamp:   now,
		Status:      domain.BackupCompleted,
		Collections: backedUpCollections,
		Type:        domain.BackupDaily,
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		s.logger.Error().Err(err).Msg("failed to record daily backup")
		return err
	}

	cutoff := now.AddDate(0, 0, -s.retentionDays)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Warn().Err(err).Msg("backup retention cleanup failed")
		return nil
	}
	s.logger.Info().Str("backup_id", record.BackupID).Int64("pruned", deleted).Msg("daily backup recorded")
	return nil
}

func (s *BackupService) List(ctx context.Context, uid string, limit int) ([]domain.BackupRecord, error) {
	if err := s.admin.requireAdmin(ctx, uid); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultBackupListLimit {
		limit = defaultBackupListLimit
	}
	return s.repo.List(ctx, limit)
}

func (s *BackupService) Delete(ctx context.Context, uid, backupID string) error {
	if err := s.admin.requireAdmin(ctx, uid); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, backupID); err != nil {
		return err
	}
	s.logger.Info().Str("backup_id", backupID).Str("uid", uid).Msg("backup record deleted")
	return nil
}

func (s *BackupService) Stats(ctx context.Context, uid string) (*BackupStats, error) {
	if err := s.admin.requireAdmin(ctx, uid); err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, defaultBackupListLimit)
	if err != nil {
		return nil, err
	}
	stats := &BackupStats{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case domain.BackupCompleted:
			stats.Completed++
		case domain.BackupFailed:
			stats.Failed++
		}
		if r.Timestamp.After(stats.Latest) {
			stats.Latest = r.Timestamp
		}
	}
	return stats, nil
}

// SimulateRestore validates that the backup exists. An actual restore is
// deliberately not exposed through the API.
func (s *BackupService) SimulateRestore(ctx context.Context, uid, backupID string) error {
	if err := s.admin.requireAdmin(ctx, uid); err != nil {
		return err
	}
	if _, err := s.repo.FindByBackupID(ctx, backupID); err != nil {
		return err
	}
	return domain.Unimplemented("Restauração real não implementada por segurança")
}
