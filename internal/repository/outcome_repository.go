package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/signal-pulse/internal/database"
	"github.com/yourusername/signal-pulse/internal/models"
)

// PostgresOutcomeRepository implements OutcomeRepository for PostgreSQL
type PostgresOutcomeRepository struct {
	db *database.DB
}

// NewPostgresOutcomeRepository creates a new outcome repository
func NewPostgresOutcomeRepository(db *database.DB) OutcomeRepository {
	return &PostgresOutcomeRepository{db: db}
}

const outcomeColumns = `id, prediction_date, symbol, sentiment, confidence, correct,
       realized_return_pct, realized_pnl, created_at, evaluated_at`

// ListEvaluatedOutcomes retrieves evaluated outcomes from windowStart onwards.
// Rows are ordered by prediction date then ID so downstream aggregation is
// deterministic across runs.
func (r *PostgresOutcomeRepository) ListEvaluatedOutcomes(ctx context.Context, windowStart time.Time) ([]*models.PredictionOutcome, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM prediction_outcomes
		WHERE correct IS NOT NULL AND prediction_date >= $1
		ORDER BY prediction_date ASC, id ASC
	`, outcomeColumns)

	rows, err := r.db.GetPool().Query(ctx, query, windowStart)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query evaluated outcomes: %v", models.ErrDataUnavailable, err)
	}
	defer rows.Close()

	var outcomes []*models.PredictionOutcome
	for rows.Next() {
		outcome := &models.PredictionOutcome{}
		err := rows.Scan(
			&outcome.ID, &outcome.PredictionDate, &outcome.Symbol, &outcome.Sentiment, &outcome.Confidence,
			&outcome.Correct, &outcome.RealizedReturnPct, &outcome.RealizedPnl, &outcome.CreatedAt, &outcome.EvaluatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan outcome: %v", models.ErrDataUnavailable, err)
		}
		outcomes = append(outcomes, outcome)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read outcomes: %v", models.ErrDataUnavailable, err)
	}

	return outcomes, nil
}

// GetByID retrieves an outcome by ID
func (r *PostgresOutcomeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PredictionOutcome, error) {
	query := fmt.Sprintf(`SELECT %s FROM prediction_outcomes WHERE id = $1`, outcomeColumns)

	outcome := &models.PredictionOutcome{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&outcome.ID, &outcome.PredictionDate, &outcome.Symbol, &outcome.Sentiment, &outcome.Confidence,
		&outcome.Correct, &outcome.RealizedReturnPct, &outcome.RealizedPnl, &outcome.CreatedAt, &outcome.EvaluatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get outcome: %v", models.ErrDataUnavailable, err)
	}

	return outcome, nil
}

// CountEvaluated counts evaluated outcomes from windowStart onwards
func (r *PostgresOutcomeRepository) CountEvaluated(ctx context.Context, windowStart time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM prediction_outcomes
		WHERE correct IS NOT NULL AND prediction_date >= $1
	`

	var count int
	err := r.db.GetPool().QueryRow(ctx, query, windowStart).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to count evaluated outcomes: %v", models.ErrDataUnavailable, err)
	}

	return count, nil
}
