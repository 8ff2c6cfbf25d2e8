package models

import (
	"time"

	"github.com/google/uuid"
)

// Sentiment represents the forecast direction of a signal
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// IsValid reports whether the sentiment is one of the known categories
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentBullish, SentimentBearish, SentimentNeutral:
		return true
	}
	return false
}

// PredictionOutcome represents a directional forecast and, once the evaluation
// horizon has elapsed, its realized result. Records are created with the
// realized fields unset and are written exactly once by the external
// evaluation process; the analytics layer treats them as read-only.
type PredictionOutcome struct {
	ID                uuid.UUID  `db:"id" json:"id" validate:"required"`
	PredictionDate    time.Time  `db:"prediction_date" json:"prediction_date" validate:"required"`
	Symbol            string     `db:"symbol" json:"symbol" validate:"required"`
	Sentiment         Sentiment  `db:"sentiment" json:"sentiment" validate:"required,oneof=bullish bearish neutral"`
	Confidence        float64    `db:"confidence" json:"confidence" validate:"gte=0,lte=1"`
	Correct           *bool      `db:"correct" json:"correct"`
	RealizedReturnPct *float64   `db:"realized_return_pct" json:"realized_return_pct"`
	RealizedPnl       *float64   `db:"realized_pnl" json:"realized_pnl"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	EvaluatedAt       *time.Time `db:"evaluated_at" json:"evaluated_at"`
}

// IsEvaluated reports whether the evaluation horizon has elapsed and the
// realized result is known. Unevaluated records are excluded from every
// calculator.
func (o *PredictionOutcome) IsEvaluated() bool {
	return o.Correct != nil
}

// IsWin reports whether the forecast direction proved correct.
func (o *PredictionOutcome) IsWin() bool {
	return o.Correct != nil && *o.Correct
}

// Pnl returns the realized dollar P&L, or 0 if not yet evaluated.
func (o *PredictionOutcome) Pnl() float64 {
	if o.RealizedPnl == nil {
		return 0
	}
	return *o.RealizedPnl
}

// ReturnPct returns the realized percentage return, or 0 if not yet evaluated.
func (o *PredictionOutcome) ReturnPct() float64 {
	if o.RealizedReturnPct == nil {
		return 0
	}
	return *o.RealizedReturnPct
}
