package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/core/domain"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
)

const (
	healthErrorRateThreshold = 0.10
	healthLatencyThresholdMS = 3000
	userMetricsRecentLimit   = 20
)

// Flusher is the draining side of the event collector, used by the
// maintenance loop before cleanup.
type Flusher interface {
	FlushAll(ctx context.Context) error
}

// HealthReport is the answer to the health-check intent: a status plus
// human-readable alerts when thresholds are crossed.
type HealthReport struct {
	Status string   `json:"status"` // "healthy" or "degraded"
	Alerts []string `json:"alerts,omitempty"`
	System *domain.SystemMetrics `json:"system"`
}

type MonitoringService struct {
	repo          ports.MetricsRepository
	flusher       Flusher
	retentionDays int
	logger        zerolog.Logger
}

func NewMonitoringService(repo ports.MetricsRepository, flusher Flusher, retentionDays int, logger zerolog.Logger) *MonitoringService {
	return &MonitoringService{repo: repo, flusher: flusher, retentionDays: retentionDays, logger: logger}
}

// GetSystemMetrics aggregates the last 24 hours of recorded activity.
func (s *MonitoringService) GetSystemMetrics(ctx context.Context) (*domain.SystemMetrics, error) {
	since := time.Now().UTC().Add(-24 * time.Hour)

	actions, err := s.repo.UserActionsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	perf, err := s.repo.PerformanceSince(ctx, since)
	if err != nil {
		return nil, err
	}

	users := map[string]struct{}{}
	failures := 0
	for _, a := range actions {
		users[a.UserID] = struct{}{}
		if !a.Success {
			failures++
		}
	}

	metrics := &domain.SystemMetrics{
		Timestamp:     time.Now().UTC(),
		ActiveUsers:   len(users),
		TotalRequests: len(actions),
	}
	if len(actions) > 0 {
		metrics.ErrorRate = float64(failures) / float64(len(actions))
	}
	if len(perf) > 0 {
		var total int64
		for _, p := range perf {
			total += p.DurationMS
		}
		metrics.AvgResponseTime = float64(total) / float64(len(perf))
	}
	return metrics, nil
}

// GetUserMetrics aggregates one user's actions over the last days days.
func (s *MonitoringService) GetUserMetrics(ctx context.Context, userID string, days int) (*domain.UserMetrics, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	actions, err := s.repo.UserActionsByUser(ctx, userID, since, 1000)
	if err != nil {
		return nil, err
	}

	metrics := &domain.UserMetrics{
		TotalActions: len(actions),
		ActionCounts: map[string]int{},
	}
	for _, a := range actions {
		metrics.ActionCounts[a.Action]++
		if a.Success {
			metrics.SuccessfulActions++
		}
	}
	if len(actions) > 0 {
		metrics.ErrorRate = float64(len(actions)-metrics.SuccessfulActions) / float64(len(actions))
	}
	if len(actions) > userMetricsRecentLimit {
		metrics.RecentActions = actions[:userMetricsRecentLimit]
	} else {
		metrics.RecentActions = actions
	}
	return metrics, nil
}

// CheckHealth evaluates the 24h aggregates against alert thresholds.
func (s *MonitoringService) CheckHealth(ctx context.Context) (*HealthReport, error) {
	system, err := s.GetSystemMetrics(ctx)
	if err != nil {
		return nil, err
	}

	report := &HealthReport{Status: "healthy", System: system}
	if system.TotalRequests > 0 && system.ErrorRate > healthErrorRateThreshold {
		report.Alerts = append(report.Alerts, fmt.Sprintf("Taxa de erro alta: %.1f%%", system.ErrorRate*100))
	}
	if system.AvgResponseTime > healthLatencyThresholdMS {
		report.Alerts = append(report.Alerts, fmt.Sprintf("Tempo médio de resposta alto: %.0fms", system.AvgResponseTime))
	}
	if len(report.Alerts) > 0 {
		report.Status = "degraded"
		s.logger.Warn().Strs("alerts", report.Alerts).Msg("health check degraded")
	}
	return report, nil
}

// CleanupOld flushes pending events and prunes those past the retention
// window. Called by the daily maintenance loop.
func (s *MonitoringService) CleanupOld(ctx context.Context) error {
	if err := s.flusher.FlushAll(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("pre-cleanup flush failed")
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("metrics cleanup failed")
		return err
	}
	s.logger.Info().Int64("deleted", deleted).Msg("old metrics events pruned")
	return nil
}
