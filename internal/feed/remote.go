package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/signal-pulse/internal/config"
	"github.com/yourusername/signal-pulse/internal/models"
	"github.com/yourusername/signal-pulse/internal/repository"
)

// outcomeDTO mirrors the evaluator service's wire format. Monetary and
// percentage fields arrive as decimal strings to avoid float drift in
// transit.
type outcomeDTO struct {
	ID                string  `json:"id"`
	PredictionDate    string  `json:"prediction_date"`
	Symbol            string  `json:"symbol"`
	Sentiment         string  `json:"sentiment"`
	Confidence        float64 `json:"confidence"`
	Correct           *bool   `json:"correct"`
	RealizedReturnPct *string `json:"realized_return_pct"`
	RealizedPnl       *string `json:"realized_pnl"`
	CreatedAt         string  `json:"created_at"`
	EvaluatedAt       *string `json:"evaluated_at"`
}

type outcomesResponse struct {
	Outcomes []outcomeDTO `json:"outcomes"`
	Count    int          `json:"count"`
}

// RemoteOutcomeSource fetches evaluated outcomes from the evaluator service
// over HTTP. It satisfies repository.OutcomeRepository so the analytics
// service can swap it for the database-backed source.
type RemoteOutcomeSource struct {
	client  *RateLimitedHTTPClient
	baseURL string
	apiKey  string
	logger  *logrus.Logger
}

// NewRemoteOutcomeSource creates a remote outcome source from feed configuration
func NewRemoteOutcomeSource(cfg *config.FeedConfig, logger *logrus.Logger) *RemoteOutcomeSource {
	clientCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		clientCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.MaxRetries > 0 {
		clientCfg.MaxRetries = cfg.MaxRetries
	}
	if cfg.RateLimit > 0 {
		clientCfg.RateLimit = cfg.RateLimit
	}

	return &RemoteOutcomeSource{
		client:  NewRateLimitedHTTPClient(clientCfg, nil),
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

var _ repository.OutcomeRepository = (*RemoteOutcomeSource)(nil)

// ListEvaluatedOutcomes fetches evaluated outcomes from windowStart onwards
func (s *RemoteOutcomeSource) ListEvaluatedOutcomes(ctx context.Context, windowStart time.Time) ([]*models.PredictionOutcome, error) {
	url := fmt.Sprintf("%s/outcomes?evaluated=true&from=%s", s.baseURL, windowStart.UTC().Format(time.RFC3339))

	resp, err := s.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: outcome feed request failed: %v", models.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: outcome feed returned status %d", models.ErrDataUnavailable, resp.StatusCode)
	}

	var payload outcomesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode outcome feed response: %v", models.ErrDataUnavailable, err)
	}

	outcomes := make([]*models.PredictionOutcome, 0, len(payload.Outcomes))
	for _, dto := range payload.Outcomes {
		outcome, err := normalizeOutcome(dto)
		if err != nil {
			s.logger.WithError(err).WithField("outcome_id", dto.ID).Warn("Skipping malformed outcome record")
			continue
		}
		outcomes = append(outcomes, outcome)
	}

	s.logger.WithFields(logrus.Fields{
		"fetched": len(payload.Outcomes),
		"kept":    len(outcomes),
	}).Debug("Fetched outcomes from remote feed")

	return outcomes, nil
}

// GetByID retrieves a single outcome from the feed
func (s *RemoteOutcomeSource) GetByID(ctx context.Context, id uuid.UUID) (*models.PredictionOutcome, error) {
	url := fmt.Sprintf("%s/outcomes/%s", s.baseURL, id)

	resp, err := s.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: outcome feed request failed: %v", models.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: outcome feed returned status %d", models.ErrDataUnavailable, resp.StatusCode)
	}

	var dto outcomeDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("%w: failed to decode outcome: %v", models.ErrDataUnavailable, err)
	}

	return normalizeOutcome(dto)
}

// CountEvaluated counts evaluated outcomes in the window
func (s *RemoteOutcomeSource) CountEvaluated(ctx context.Context, windowStart time.Time) (int, error) {
	outcomes, err := s.ListEvaluatedOutcomes(ctx, windowStart)
	if err != nil {
		return 0, err
	}
	return len(outcomes), nil
}

// Close releases the underlying HTTP client resources
func (s *RemoteOutcomeSource) Close() error {
	return s.client.Close()
}

func (s *RemoteOutcomeSource) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	return s.client.Do(ctx, req)
}

// normalizeOutcome converts a wire record into the domain model
func normalizeOutcome(dto outcomeDTO) (*models.PredictionOutcome, error) {
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid outcome id '%s': %w", dto.ID, err)
	}

	predictionDate, err := parseFeedTime(dto.PredictionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid prediction_date '%s': %w", dto.PredictionDate, err)
	}

	createdAt, err := parseFeedTime(dto.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at '%s': %w", dto.CreatedAt, err)
	}

	sentiment := models.Sentiment(dto.Sentiment)
	if !sentiment.IsValid() {
		return nil, fmt.Errorf("unknown sentiment '%s'", dto.Sentiment)
	}

	if math.IsNaN(dto.Confidence) || dto.Confidence < 0 || dto.Confidence > 1 {
		return nil, fmt.Errorf("confidence %v outside [0, 1]", dto.Confidence)
	}

	outcome := &models.PredictionOutcome{
		ID:             id,
		PredictionDate: predictionDate,
		Symbol:         dto.Symbol,
		Sentiment:      sentiment,
		Confidence:     dto.Confidence,
		Correct:        dto.Correct,
		CreatedAt:      createdAt,
	}

	if dto.RealizedReturnPct != nil {
		v, err := parseDecimalField("realized_return_pct", *dto.RealizedReturnPct)
		if err != nil {
			return nil, err
		}
		outcome.RealizedReturnPct = &v
	}
	if dto.RealizedPnl != nil {
		v, err := parseDecimalField("realized_pnl", *dto.RealizedPnl)
		if err != nil {
			return nil, err
		}
		outcome.RealizedPnl = &v
	}
	if dto.EvaluatedAt != nil {
		t, err := parseFeedTime(*dto.EvaluatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid evaluated_at '%s': %w", *dto.EvaluatedAt, err)
		}
		outcome.EvaluatedAt = &t
	}

	return outcome, nil
}

// parseDecimalField parses a decimal string from the wire format
func parseDecimalField(name, value string) (float64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", name, value, err)
	}
	f, _ := d.Float64()
	return f, nil
}

// parseFeedTime accepts RFC3339 timestamps and bare dates
func parseFeedTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
