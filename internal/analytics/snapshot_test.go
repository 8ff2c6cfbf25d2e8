package analytics

import (
	"errors"
	"testing"

	"github.com/yourusername/signal-pulse/internal/models"
)

func TestComputeSnapshotPopulatesEverySection(t *testing.T) {
	outcomes := make([]*models.PredictionOutcome, 0, 40)
	for day := 1; day <= 40; day++ {
		pnl := 10.0
		if day%3 == 0 {
			pnl = -8.0
		}
		outcomes = append(outcomes, evaluated(day%28+1, day%3 != 0, pnl))
	}

	snap, err := ComputeSnapshot(outcomes, DefaultParams())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if snap.OutcomeCount != 40 {
		t.Errorf("expected 40 outcomes, got %d", snap.OutcomeCount)
	}
	if len(snap.EquityCurve) != 40 {
		t.Errorf("expected 40 equity points, got %d", len(snap.EquityCurve))
	}
	if len(snap.Drawdown) == 0 {
		t.Error("expected drawdown series")
	}
	if len(snap.Streaks.Streaks) == 0 {
		t.Error("expected streak encoding")
	}
	if len(snap.RollingAccuracy) != 11 {
		t.Errorf("expected 11 rolling points for 40 outcomes with window 30, got %d", len(snap.RollingAccuracy))
	}
	if snap.Calibration.TotalSamples != 40 {
		t.Errorf("expected 40 calibration samples, got %d", snap.Calibration.TotalSamples)
	}
	if len(snap.BySentiment) == 0 {
		t.Error("expected sentiment breakdown")
	}
	if len(snap.ByPeriod) == 0 {
		t.Error("expected period breakdown")
	}
	if snap.Summary.TotalTrades != 40 {
		t.Errorf("expected 40 trades in summary, got %d", snap.Summary.TotalTrades)
	}
	if snap.GeneratedAt.IsZero() {
		t.Error("expected generated timestamp")
	}
}

func TestComputeSnapshotRejectsInvalidParams(t *testing.T) {
	params := DefaultParams()
	params.BucketWidth = 2.0

	_, err := ComputeSnapshot(nil, params)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, models.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestComputeSnapshotEmptyInput(t *testing.T) {
	snap, err := ComputeSnapshot(nil, DefaultParams())
	if err != nil {
		t.Fatalf("empty input must not be an error, got %v", err)
	}
	if snap.OutcomeCount != 0 {
		t.Errorf("expected zero outcomes, got %d", snap.OutcomeCount)
	}
	if len(snap.EquityCurve) != 0 {
		t.Errorf("expected empty curve, got %d points", len(snap.EquityCurve))
	}
	if snap.Streaks.Current.Type != StreakNone {
		t.Errorf("expected current streak none, got %s", snap.Streaks.Current.Type)
	}
}

func TestComputeSnapshotInternalConsistency(t *testing.T) {
	outcomes := []*models.PredictionOutcome{
		evaluated(1, true, 50),
		evaluated(2, true, 30),
		evaluated(3, false, -20),
	}

	snap, err := ComputeSnapshot(outcomes, DefaultParams())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !almostEqual(snap.EquityCurve.FinalPnl(), snap.Summary.TotalPnl) {
		t.Errorf("equity curve final %.2f disagrees with summary total %.2f",
			snap.EquityCurve.FinalPnl(), snap.Summary.TotalPnl)
	}
	if !almostEqual(snap.Drawdown.MaxDrawdown(), snap.Summary.MaxDrawdown) {
		t.Errorf("drawdown %.2f disagrees with summary %.2f",
			snap.Drawdown.MaxDrawdown(), snap.Summary.MaxDrawdown)
	}

	streakTotal := 0
	for _, streak := range snap.Streaks.Streaks {
		streakTotal += streak.Length
	}
	if streakTotal != snap.OutcomeCount {
		t.Errorf("streak lengths sum to %d, expected %d", streakTotal, snap.OutcomeCount)
	}
}
