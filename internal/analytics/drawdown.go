package analytics

import (
	"math"
	"time"

	"github.com/yourusername/signal-pulse/internal/models"
)

// DrawdownPoint represents the decline from the running equity peak on one
// calendar date.
type DrawdownPoint struct {
	Date          time.Time `json:"date"`
	CumulativePnl float64   `json:"cumulative_pnl"`
	PeakPnl       float64   `json:"peak_pnl"`
	Drawdown      float64   `json:"drawdown"`
	DrawdownPct   float64   `json:"drawdown_pct"`
}

// DrawdownSeries represents a time-series of drawdown points, one per
// distinct calendar date.
type DrawdownSeries []DrawdownPoint

// AnalyzeDrawdown computes the peak-tracking drawdown series. Outcomes are
// collapsed to one point per calendar date using the last cumulative value of
// that date, so same-day ordering cannot produce drawdown noise. Drawdown is
// always <= 0 and equals 0 exactly at a new peak.
func AnalyzeDrawdown(outcomes []*models.PredictionOutcome) DrawdownSeries {
	ordered := sortedEvaluated(outcomes)
	series := make(DrawdownSeries, 0, len(ordered))

	peak := math.Inf(-1)
	total := 0.0
	for i, o := range ordered {
		total += o.Pnl()

		day := dayOf(o.PredictionDate)
		if i+1 < len(ordered) && dayOf(ordered[i+1].PredictionDate).Equal(day) {
			continue
		}

		if total > peak {
			peak = total
		}
		drawdown := total - peak
		pct := 0.0
		if peak > 0 {
			pct = drawdown / peak * 100
		}

		series = append(series, DrawdownPoint{
			Date:          day,
			CumulativePnl: total,
			PeakPnl:       peak,
			Drawdown:      drawdown,
			DrawdownPct:   pct,
		})
	}

	return series
}

// MaxDrawdown returns the deepest decline in the series as a non-positive
// value, or 0 for an empty series.
func (d DrawdownSeries) MaxDrawdown() float64 {
	maxDD := 0.0
	for _, p := range d {
		if p.Drawdown < maxDD {
			maxDD = p.Drawdown
		}
	}
	return maxDD
}
