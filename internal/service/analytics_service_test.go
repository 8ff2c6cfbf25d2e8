package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/signal-pulse/internal/analytics"
	"github.com/yourusername/signal-pulse/internal/config"
	"github.com/yourusername/signal-pulse/internal/models"
)

// stubOutcomeRepository serves a fixed outcome set and counts calls
type stubOutcomeRepository struct {
	outcomes []*models.PredictionOutcome
	err      error
	calls    int
}

func (s *stubOutcomeRepository) ListEvaluatedOutcomes(ctx context.Context, windowStart time.Time) ([]*models.PredictionOutcome, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.outcomes, nil
}

func (s *stubOutcomeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PredictionOutcome, error) {
	for _, o := range s.outcomes {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *stubOutcomeRepository) CountEvaluated(ctx context.Context, windowStart time.Time) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return len(s.outcomes), nil
}

func testOutcome(day int, correct bool, pnl float64) *models.PredictionOutcome {
	c := correct
	p := pnl
	date := time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC)
	evaluated := date.AddDate(0, 0, 1)
	return &models.PredictionOutcome{
		ID:             uuid.New(),
		PredictionDate: date,
		Symbol:         "AAPL",
		Sentiment:      models.SentimentBullish,
		Confidence:     0.65,
		Correct:        &c,
		RealizedPnl:    &p,
		CreatedAt:      date,
		EvaluatedAt:    &evaluated,
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestGetSnapshotComputesAllSections(t *testing.T) {
	repo := &stubOutcomeRepository{outcomes: []*models.PredictionOutcome{
		testOutcome(1, true, 50),
		testOutcome(2, true, 30),
		testOutcome(3, false, -20),
	}}
	svc := NewAnalyticsService(repo, 90, quietLogger())

	snap, err := svc.GetSnapshot(context.Background(), analytics.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 3, snap.OutcomeCount)
	assert.Len(t, snap.EquityCurve, 3)
	assert.InDelta(t, 60.0, snap.EquityCurve.FinalPnl(), 1e-9)
	assert.InDelta(t, -20.0, snap.Drawdown.MaxDrawdown(), 1e-9)
	assert.Equal(t, 2, snap.Summary.Wins)
	assert.Equal(t, 1, snap.Summary.Losses)
}

func TestGetSnapshotPropagatesFeedError(t *testing.T) {
	repo := &stubOutcomeRepository{err: models.ErrDataUnavailable}
	svc := NewAnalyticsService(repo, 90, quietLogger())

	_, err := svc.GetSnapshot(context.Background(), analytics.DefaultParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDataUnavailable)
}

func TestGetSnapshotRejectsInvalidParams(t *testing.T) {
	repo := &stubOutcomeRepository{}
	svc := NewAnalyticsService(repo, 90, quietLogger())

	params := analytics.DefaultParams()
	params.RollingWindow = 0
	_, err := svc.GetSnapshot(context.Background(), params)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidParameter)
	assert.Equal(t, 0, repo.calls, "invalid params must be rejected before fetching")
}

func TestGetSnapshotEmptyHistoryIsNotAnError(t *testing.T) {
	repo := &stubOutcomeRepository{}
	svc := NewAnalyticsService(repo, 90, quietLogger())

	snap, err := svc.GetSnapshot(context.Background(), analytics.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.OutcomeCount)
	assert.Empty(t, snap.EquityCurve)
	assert.Equal(t, 0.0, snap.Summary.ProfitFactor)
}

func TestUncachedRefreshRecomputesEachTime(t *testing.T) {
	repo := &stubOutcomeRepository{outcomes: []*models.PredictionOutcome{
		testOutcome(1, true, 50),
	}}
	svc := NewAnalyticsService(repo, 90, quietLogger())

	params := analytics.DefaultParams()
	first, err := svc.Refresh(context.Background(), params)
	require.NoError(t, err)
	second, err := svc.Refresh(context.Background(), params)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, repo.calls)
}

func TestCachedServiceReusesSnapshot(t *testing.T) {
	repo := &stubOutcomeRepository{outcomes: []*models.PredictionOutcome{
		testOutcome(1, true, 50),
	}}
	svc := NewAnalyticsService(repo, 90, quietLogger())
	cached := NewCachedAnalyticsService(svc, &config.CacheConfig{
		Enabled:    true,
		TTLSeconds: 60,
		MaxEntries: 16,
	}, quietLogger())

	params := analytics.DefaultParams()
	first, err := cached.GetSnapshot(context.Background(), params)
	require.NoError(t, err)
	second, err := cached.GetSnapshot(context.Background(), params)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, repo.calls)

	hits, misses, ratio := cached.GetCacheStats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 0.5, ratio, 1e-9)
}

func TestCachedServiceDistinguishesParams(t *testing.T) {
	repo := &stubOutcomeRepository{outcomes: []*models.PredictionOutcome{
		testOutcome(1, true, 50),
	}}
	svc := NewAnalyticsService(repo, 90, quietLogger())
	cached := NewCachedAnalyticsService(svc, &config.CacheConfig{
		Enabled:    true,
		TTLSeconds: 60,
		MaxEntries: 16,
	}, quietLogger())

	_, err := cached.GetSnapshot(context.Background(), analytics.DefaultParams())
	require.NoError(t, err)

	other := analytics.DefaultParams()
	other.RollingWindow = 7
	_, err = cached.GetSnapshot(context.Background(), other)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.calls)
}

func TestCachedServiceRefreshReplacesEntry(t *testing.T) {
	repo := &stubOutcomeRepository{outcomes: []*models.PredictionOutcome{
		testOutcome(1, true, 50),
	}}
	svc := NewAnalyticsService(repo, 90, quietLogger())
	cached := NewCachedAnalyticsService(svc, &config.CacheConfig{
		Enabled:    true,
		TTLSeconds: 60,
		MaxEntries: 16,
	}, quietLogger())

	params := analytics.DefaultParams()
	first, err := cached.GetSnapshot(context.Background(), params)
	require.NoError(t, err)

	refreshed, err := cached.Refresh(context.Background(), params)
	require.NoError(t, err)
	assert.NotSame(t, first, refreshed)

	current, err := cached.GetSnapshot(context.Background(), params)
	require.NoError(t, err)
	assert.Same(t, refreshed, current)
}
