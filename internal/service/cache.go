package service

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/signal-pulse/internal/analytics"
)

// CacheKey identifies one snapshot computation
type CacheKey struct {
	WindowStart time.Time
	ParamsHash  string
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s", k.WindowStart.Format("2006-01-02"), k.ParamsHash)
}

// SnapshotCache provides in-memory caching for analytics snapshots
type SnapshotCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewSnapshotCache creates a new snapshot cache
func NewSnapshotCache(ttl time.Duration, maxSize int) *SnapshotCache {
	return &SnapshotCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached snapshot
func (sc *SnapshotCache) Get(key CacheKey) *analytics.Snapshot {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if result, found := sc.cache.Get(key.String()); found {
		if snap, ok := result.(*analytics.Snapshot); ok {
			sc.hitCount++
			return snap
		}
	}

	sc.missCount++
	return nil
}

// Set stores a snapshot in cache
func (sc *SnapshotCache) Set(key CacheKey, snap *analytics.Snapshot) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Check size limit
	if sc.cache.ItemCount() >= sc.maxSize {
		sc.cache.DeleteExpired()
	}

	sc.cache.Set(key.String(), snap, sc.ttl)
}

// Clear flushes the entire cache
func (sc *SnapshotCache) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.cache.Flush()
	sc.hitCount = 0
	sc.missCount = 0
}

// Stats returns cache statistics
func (sc *SnapshotCache) Stats() (hits, misses uint64, ratio float64) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	hits = sc.hitCount
	misses = sc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (sc *SnapshotCache) ItemCount() int {
	return sc.cache.ItemCount()
}
