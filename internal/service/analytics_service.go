// Package service orchestrates outcome retrieval and analytics computation.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/signal-pulse/internal/analytics"
	"github.com/yourusername/signal-pulse/internal/metrics"
	"github.com/yourusername/signal-pulse/internal/repository"
)

// SnapshotProvider produces analytics snapshots for a parameter set
type SnapshotProvider interface {
	GetSnapshot(ctx context.Context, params analytics.Params) (*analytics.Snapshot, error)
}

// AnalyticsService fetches evaluated outcomes once per request and runs every
// calculator over that immutable snapshot
type AnalyticsService struct {
	repo         repository.OutcomeRepository
	lookbackDays int
	logger       *logrus.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repository.OutcomeRepository, lookbackDays int, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:         repo,
		lookbackDays: lookbackDays,
		logger:       logger,
	}
}

var _ SnapshotProvider = (*AnalyticsService)(nil)

// WindowStart returns the inclusive lower bound of the analysis window.
// A zero lookback means the full history.
func (s *AnalyticsService) WindowStart() time.Time {
	if s.lookbackDays <= 0 {
		return time.Time{}
	}
	return time.Now().UTC().AddDate(0, 0, -s.lookbackDays).Truncate(24 * time.Hour)
}

// GetSnapshot fetches outcomes and computes a full analytics snapshot
func (s *AnalyticsService) GetSnapshot(ctx context.Context, params analytics.Params) (*analytics.Snapshot, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	windowStart := s.WindowStart()

	fetchStart := time.Now()
	outcomes, err := s.repo.ListEvaluatedOutcomes(ctx, windowStart)
	metrics.RecordFeedRequest(time.Since(fetchStart).Seconds())
	if err != nil {
		metrics.RecordFeedError()
		s.logger.WithError(err).Error("Failed to fetch evaluated outcomes")
		return nil, fmt.Errorf("failed to fetch evaluated outcomes: %w", err)
	}

	computeStart := time.Now()
	snap, err := analytics.ComputeSnapshot(outcomes, params)
	if err != nil {
		metrics.RecordSnapshotError()
		return nil, fmt.Errorf("failed to compute snapshot: %w", err)
	}
	metrics.RecordSnapshotComputed(time.Since(computeStart).Seconds())
	metrics.UpdateSnapshotGauges(
		snap.OutcomeCount,
		snap.Summary.WinRatePct,
		snap.Summary.MaxDrawdown,
		snap.Summary.TotalPnl,
		snap.Streaks.Current.Length,
	)

	s.logger.WithFields(logrus.Fields{
		"outcomes":     snap.OutcomeCount,
		"win_rate_pct": snap.Summary.WinRatePct,
		"total_pnl":    snap.Summary.TotalPnl,
		"duration_ms":  time.Since(computeStart).Milliseconds(),
	}).Info("Computed analytics snapshot")

	return snap, nil
}

// Refresh recomputes the snapshot. Without a cache layer a refresh is a
// plain recompute; it still refreshes the KPI gauges.
func (s *AnalyticsService) Refresh(ctx context.Context, params analytics.Params) (*analytics.Snapshot, error) {
	return s.GetSnapshot(ctx, params)
}

// GetOutcomeCount returns the number of evaluated outcomes in the window
func (s *AnalyticsService) GetOutcomeCount(ctx context.Context) (int, error) {
	count, err := s.repo.CountEvaluated(ctx, s.WindowStart())
	if err != nil {
		return 0, fmt.Errorf("failed to count evaluated outcomes: %w", err)
	}
	return count, nil
}
