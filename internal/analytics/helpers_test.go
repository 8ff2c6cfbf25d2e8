package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/signal-pulse/internal/models"
)

// evaluated builds one evaluated outcome on the given day of January 2026
func evaluated(day int, correct bool, pnl float64) *models.PredictionOutcome {
	return evaluatedConf(day, correct, pnl, 0.65)
}

// evaluatedConf builds one evaluated outcome with an explicit confidence
func evaluatedConf(day int, correct bool, pnl float64, confidence float64) *models.PredictionOutcome {
	c := correct
	p := pnl
	date := time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC)
	evaluatedAt := date.AddDate(0, 0, 1)
	return &models.PredictionOutcome{
		ID:             deterministicID(day),
		PredictionDate: date,
		Symbol:         "AAPL",
		Sentiment:      models.SentimentBullish,
		Confidence:     confidence,
		Correct:        &c,
		RealizedPnl:    &p,
		CreatedAt:      date,
		EvaluatedAt:    &evaluatedAt,
	}
}

// pending builds an outcome that has not been evaluated yet
func pending(day int) *models.PredictionOutcome {
	date := time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC)
	return &models.PredictionOutcome{
		ID:             deterministicID(day),
		PredictionDate: date,
		Symbol:         "AAPL",
		Sentiment:      models.SentimentNeutral,
		Confidence:     0.5,
		CreatedAt:      date,
	}
}

func deterministicID(day int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("outcome-%03d", day)))
}

func almostEqual(a, b float64) bool {
	const epsilon = 1e-9
	diff := a - b
	return diff < epsilon && diff > -epsilon
}
