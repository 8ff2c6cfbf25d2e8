package analytics

import (
	"time"

	"github.com/yourusername/signal-pulse/internal/models"
)

// StreakType classifies a run of consecutive outcomes
type StreakType string

const (
	StreakWin  StreakType = "win"
	StreakLoss StreakType = "loss"
	// StreakNone is the neutral sentinel for an empty input set.
	StreakNone StreakType = "none"
)

// Streak represents a maximal run of consecutive wins or losses
type Streak struct {
	Type      StreakType `json:"type"`
	Length    int        `json:"length"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
}

// CurrentStreak is the open streak at the end of the series
type CurrentStreak struct {
	Type   StreakType `json:"type"`
	Length int        `json:"length"`
}

// StreakSummary holds the run-length encoding of the outcome series.
// The sum of all streak lengths equals the number of evaluated outcomes.
type StreakSummary struct {
	Streaks       []Streak      `json:"streaks"`
	Current       CurrentStreak `json:"current"`
	MaxWinStreak  int           `json:"max_win_streak"`
	MaxLossStreak int           `json:"max_loss_streak"`
}

// DetectStreaks run-length encodes the win/loss series in a single
// left-to-right pass over (prediction date, id) order.
func DetectStreaks(outcomes []*models.PredictionOutcome) StreakSummary {
	ordered := sortedEvaluated(outcomes)
	summary := StreakSummary{
		Streaks: []Streak{},
		Current: CurrentStreak{Type: StreakNone},
	}
	if len(ordered) == 0 {
		return summary
	}

	streakTypeOf := func(o *models.PredictionOutcome) StreakType {
		if o.IsWin() {
			return StreakWin
		}
		return StreakLoss
	}

	current := Streak{
		Type:      streakTypeOf(ordered[0]),
		Length:    1,
		StartDate: ordered[0].PredictionDate,
		EndDate:   ordered[0].PredictionDate,
	}

	flush := func() {
		summary.Streaks = append(summary.Streaks, current)
		switch current.Type {
		case StreakWin:
			if current.Length > summary.MaxWinStreak {
				summary.MaxWinStreak = current.Length
			}
		case StreakLoss:
			if current.Length > summary.MaxLossStreak {
				summary.MaxLossStreak = current.Length
			}
		}
	}

	for _, o := range ordered[1:] {
		t := streakTypeOf(o)
		if t == current.Type {
			current.Length++
			current.EndDate = o.PredictionDate
			continue
		}
		flush()
		current = Streak{
			Type:      t,
			Length:    1,
			StartDate: o.PredictionDate,
			EndDate:   o.PredictionDate,
		}
	}
	flush()

	last := summary.Streaks[len(summary.Streaks)-1]
	summary.Current = CurrentStreak{Type: last.Type, Length: last.Length}

	return summary
}
