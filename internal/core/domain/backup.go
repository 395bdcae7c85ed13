package domain

import (
	"errors"
	"time"
)

// BackupType distinguishes scheduled from on-demand backups.
type BackupType string

const (
	BackupDaily  BackupType = "daily"
	BackupManual BackupType = "manual"
)

// BackupStatus is the terminal outcome of a backup job.
type BackupStatus string

const (
	BackupCompleted BackupStatus = "completed"
	BackupFailed    BackupStatus = "failed"
)

var ErrBackupNotFound = errors.New("backup not found")

// BackupRecord is the metadata of one backup job. The data export itself is
// handled by the hosting platform; only job metadata lives here.
type BackupRecord struct {
	ID          string       `json:"id" bson:"_id"`
	BackupID    string       `json:"backup_id" bson:"backup_id"`
	Timestamp   time.Time    `json:"timestamp" bson:"timestamp"`
	Status      BackupStatus `json:"status" bson:"status"`
	Collections []string     `json:"collections" bson:"collections"`
	RequestedBy string       `json:"requested_by,omitempty" bson:"requested_by,omitempty"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Type        BackupType   `json:"type" bson:"type"`
	Error       string       `json:"error,omitempty" bson:"error,omitempty"`
}

// AdminAction is one entry of the append-only administrative audit log.
type AdminAction struct {
	ID        string         `json:"id,omitempty" bson:"_id,omitempty"`
	AdminUID  string         `json:"admin_uid" bson:"admin_uid"`
	Action    string         `json:"action" bson:"action"`
	TargetUID string         `json:"target_uid,omitempty" bson:"target_uid,omitempty"`
	Details   map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}
