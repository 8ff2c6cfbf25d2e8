// Package repository defines data access interfaces and their PostgreSQL implementations.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/signal-pulse/internal/models"
)

// OutcomeRepository provides access to evaluated prediction outcomes
type OutcomeRepository interface {
	// ListEvaluatedOutcomes returns all evaluated outcomes with a prediction
	// date at or after windowStart, ordered by prediction date then ID
	ListEvaluatedOutcomes(ctx context.Context, windowStart time.Time) ([]*models.PredictionOutcome, error)

	// GetByID retrieves a single outcome by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.PredictionOutcome, error)

	// CountEvaluated returns the number of evaluated outcomes in the window
	CountEvaluated(ctx context.Context, windowStart time.Time) (int, error)
}
