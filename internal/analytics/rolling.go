package analytics

import (
	"fmt"
	"time"

	"github.com/yourusername/signal-pulse/internal/models"
)

// RollingAccuracyPoint represents accuracy over the trailing fixed-size
// window ending at Date.
type RollingAccuracyPoint struct {
	Date               time.Time `json:"date"`
	WindowAccuracyPct  float64   `json:"window_accuracy_pct"`
	WindowCorrectCount int       `json:"window_correct_count"`
	WindowSize         int       `json:"window_size"`
}

// RollingAccuracy computes a count-based sliding-window accuracy series. One
// point is emitted per outcome once a full window is available. Fewer records
// than the window size yields an empty series; the window never shrinks, so
// callers can render a "not enough data yet" state instead of a misleading
// short-window figure.
func RollingAccuracy(outcomes []*models.PredictionOutcome, window int) ([]RollingAccuracyPoint, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: rolling window must be positive, got %d", models.ErrInvalidParameter, window)
	}

	ordered := sortedEvaluated(outcomes)
	points := []RollingAccuracyPoint{}
	if len(ordered) < window {
		return points, nil
	}

	correct := 0
	for i, o := range ordered {
		if o.IsWin() {
			correct++
		}
		if i >= window && ordered[i-window].IsWin() {
			correct--
		}
		if i < window-1 {
			continue
		}
		points = append(points, RollingAccuracyPoint{
			Date:               o.PredictionDate,
			WindowAccuracyPct:  float64(correct) / float64(window) * 100,
			WindowCorrectCount: correct,
			WindowSize:         window,
		})
	}

	return points, nil
}
