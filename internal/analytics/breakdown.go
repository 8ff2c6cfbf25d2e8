package analytics

import (
	"fmt"
	"sort"

	"github.com/yourusername/signal-pulse/internal/models"
)

// CategoryStats is the shared aggregate shape for sentiment and calendar
// period breakdowns.
type CategoryStats struct {
	Key           string  `json:"key"`
	Total         int     `json:"total"`
	Correct       int     `json:"correct"`
	Incorrect     int     `json:"incorrect"`
	AccuracyPct   float64 `json:"accuracy_pct"`
	AvgReturnPct  float64 `json:"avg_return_pct"`
	TotalPnl      float64 `json:"total_pnl"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// PeriodKind selects the calendar grouping for BreakdownByPeriod
type PeriodKind string

const (
	PeriodMonth   PeriodKind = "month"
	PeriodISOWeek PeriodKind = "iso_week"
)

// IsValid reports whether the period kind is supported.
func (k PeriodKind) IsValid() bool {
	return k == PeriodMonth || k == PeriodISOWeek
}

type categoryAccumulator struct {
	total     int
	correct   int
	returnSum float64
	pnlSum    float64
	confSum   float64
}

func (a *categoryAccumulator) add(o *models.PredictionOutcome) {
	a.total++
	if o.IsWin() {
		a.correct++
	}
	a.returnSum += o.ReturnPct()
	a.pnlSum += o.Pnl()
	a.confSum += o.Confidence
}

func (a *categoryAccumulator) stats(key string) CategoryStats {
	n := float64(a.total)
	return CategoryStats{
		Key:           key,
		Total:         a.total,
		Correct:       a.correct,
		Incorrect:     a.total - a.correct,
		AccuracyPct:   float64(a.correct) / n * 100,
		AvgReturnPct:  a.returnSum / n,
		TotalPnl:      a.pnlSum,
		AvgConfidence: a.confSum / n,
	}
}

// BreakdownBySentiment groups outcomes by forecast direction. Categories
// appear in bullish, bearish, neutral order; empty categories are omitted.
func BreakdownBySentiment(outcomes []*models.PredictionOutcome) []CategoryStats {
	groups := make(map[models.Sentiment]*categoryAccumulator)
	for _, o := range outcomes {
		if o == nil || !o.IsEvaluated() {
			continue
		}
		acc, ok := groups[o.Sentiment]
		if !ok {
			acc = &categoryAccumulator{}
			groups[o.Sentiment] = acc
		}
		acc.add(o)
	}

	order := []models.Sentiment{models.SentimentBullish, models.SentimentBearish, models.SentimentNeutral}
	stats := make([]CategoryStats, 0, len(groups))
	for _, sentiment := range order {
		if acc, ok := groups[sentiment]; ok {
			stats = append(stats, acc.stats(string(sentiment)))
		}
	}

	return stats
}

// BreakdownByPeriod groups outcomes by a calendar key derived from the
// prediction date, either ISO week ("2024-W05") or year-month ("2024-01"),
// and returns the periods most recent first.
func BreakdownByPeriod(outcomes []*models.PredictionOutcome, kind PeriodKind) ([]CategoryStats, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown period grouping %q", models.ErrInvalidParameter, kind)
	}

	groups := make(map[string]*categoryAccumulator)
	for _, o := range outcomes {
		if o == nil || !o.IsEvaluated() {
			continue
		}
		key := periodKey(o, kind)
		acc, ok := groups[key]
		if !ok {
			acc = &categoryAccumulator{}
			groups[key] = acc
		}
		acc.add(o)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	// zero-padded keys sort lexically in chronological order
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	stats := make([]CategoryStats, 0, len(keys))
	for _, key := range keys {
		stats = append(stats, groups[key].stats(key))
	}

	return stats, nil
}

func periodKey(o *models.PredictionOutcome, kind PeriodKind) string {
	if kind == PeriodISOWeek {
		year, week := o.PredictionDate.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	}
	return o.PredictionDate.Format("2006-01")
}
