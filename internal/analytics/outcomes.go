// Package analytics computes performance analytics over evaluated forecast
// outcomes. Every calculator is a pure function over an immutable snapshot:
// no I/O, no logging, no mutation of the input. Empty or insufficient input
// is a valid zero result, never an error.
package analytics

import (
	"sort"
	"time"

	"github.com/yourusername/signal-pulse/internal/models"
)

// sortedEvaluated returns a copy of outcomes filtered to evaluated records,
// ordered ascending by (prediction date, id). The id tie-break keeps results
// reproducible when several forecasts share a date.
func sortedEvaluated(outcomes []*models.PredictionOutcome) []*models.PredictionOutcome {
	ordered := make([]*models.PredictionOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o != nil && o.IsEvaluated() {
			ordered = append(ordered, o)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].PredictionDate.Equal(ordered[j].PredictionDate) {
			return ordered[i].ID.String() < ordered[j].ID.String()
		}
		return ordered[i].PredictionDate.Before(ordered[j].PredictionDate)
	})

	return ordered
}

// dayOf truncates a timestamp to its calendar date.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
