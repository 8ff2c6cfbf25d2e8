package analytics

import (
	"sync"
	"time"

	"github.com/yourusername/signal-pulse/internal/models"
)

// Snapshot represents the combined output of every calculator over one
// immutable outcome snapshot. It is a value: recomputed on every call, with
// no identity across calls.
type Snapshot struct {
	GeneratedAt     time.Time              `json:"generated_at"`
	OutcomeCount    int                    `json:"outcome_count"`
	Params          Params                 `json:"params"`
	EquityCurve     EquityCurve            `json:"equity_curve"`
	Drawdown        DrawdownSeries         `json:"drawdown"`
	Streaks         StreakSummary          `json:"streaks"`
	RollingAccuracy []RollingAccuracyPoint `json:"rolling_accuracy"`
	Calibration     CalibrationResult      `json:"calibration"`
	BySentiment     []CategoryStats        `json:"by_sentiment"`
	ByPeriod        []CategoryStats        `json:"by_period"`
	Summary         SummaryStats           `json:"summary"`
}

// ComputeSnapshot validates params and runs every calculator over the same
// snapshot. The calculators share no mutable state and each writes only its
// own result, so they run concurrently.
func ComputeSnapshot(outcomes []*models.PredictionOutcome, params Params) (*Snapshot, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	evaluated := sortedEvaluated(outcomes)
	snap := &Snapshot{
		GeneratedAt:  time.Now().UTC(),
		OutcomeCount: len(evaluated),
		Params:       params,
	}

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	// params were validated above, so the fallible calculators cannot fail
	run(func() { snap.EquityCurve = BuildEquityCurve(evaluated) })
	run(func() { snap.Drawdown = AnalyzeDrawdown(evaluated) })
	run(func() { snap.Streaks = DetectStreaks(evaluated) })
	run(func() { snap.RollingAccuracy, _ = RollingAccuracy(evaluated, params.RollingWindow) })
	run(func() {
		snap.Calibration, _ = Calibrate(evaluated, CalibrationParams{
			BucketWidth: params.BucketWidth,
			MinSamples:  params.MinBucketSamples,
		})
	})
	run(func() { snap.BySentiment = BreakdownBySentiment(evaluated) })
	run(func() { snap.ByPeriod, _ = BreakdownByPeriod(evaluated, params.PeriodKind) })
	run(func() { snap.Summary = Summarize(evaluated) })
	wg.Wait()

	return snap, nil
}
