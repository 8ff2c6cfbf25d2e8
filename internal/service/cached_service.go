package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/signal-pulse/internal/analytics"
	"github.com/yourusername/signal-pulse/internal/config"
	"github.com/yourusername/signal-pulse/internal/metrics"
)

// CachedAnalyticsService wraps AnalyticsService with snapshot caching.
// Identical parameter sets within the TTL reuse the computed snapshot
// instead of refetching outcomes.
type CachedAnalyticsService struct {
	service *AnalyticsService
	cache   *SnapshotCache
	logger  *logrus.Logger
}

// NewCachedAnalyticsService creates a new cached analytics service
func NewCachedAnalyticsService(service *AnalyticsService, cfg *config.CacheConfig, logger *logrus.Logger) *CachedAnalyticsService {
	snapshotCache := NewSnapshotCache(
		time.Duration(cfg.TTLSeconds)*time.Second,
		cfg.MaxEntries,
	)

	return &CachedAnalyticsService{
		service: service,
		cache:   snapshotCache,
		logger:  logger,
	}
}

var _ SnapshotProvider = (*CachedAnalyticsService)(nil)

// GetSnapshot retrieves a snapshot with caching
func (c *CachedAnalyticsService) GetSnapshot(ctx context.Context, params analytics.Params) (*analytics.Snapshot, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	key := CacheKey{
		WindowStart: c.service.WindowStart(),
		ParamsHash:  params.Hash(),
	}

	if cached := c.cache.Get(key); cached != nil {
		c.logger.WithField("cache_key", key.String()).Debug("Cache hit for snapshot")
		metrics.RecordCacheHit()
		return cached, nil
	}

	c.logger.WithField("cache_key", key.String()).Debug("Cache miss, computing snapshot")
	metrics.RecordCacheMiss()

	snap, err := c.service.GetSnapshot(ctx, params)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, snap)
	return snap, nil
}

// Refresh recomputes the snapshot for the given params and replaces the
// cached entry. Used by the scheduler so readers keep hitting warm entries.
func (c *CachedAnalyticsService) Refresh(ctx context.Context, params analytics.Params) (*analytics.Snapshot, error) {
	snap, err := c.service.GetSnapshot(ctx, params)
	if err != nil {
		return nil, err
	}

	key := CacheKey{
		WindowStart: c.service.WindowStart(),
		ParamsHash:  params.Hash(),
	}
	c.cache.Set(key, snap)
	return snap, nil
}

// ClearCache clears all cached snapshots
func (c *CachedAnalyticsService) ClearCache() {
	c.cache.Clear()
}

// GetCacheStats returns cache statistics
func (c *CachedAnalyticsService) GetCacheStats() (hits, misses uint64, hitRatio float64) {
	return c.cache.Stats()
}
