// Package metrics provides centralized Prometheus metrics registry for the analytics service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SnapshotsComputedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signal_pulse",
		Name:      "snapshots_computed_total",
		Help:      "Total number of analytics snapshots computed",
	})
	SnapshotErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signal_pulse",
		Name:      "snapshot_errors_total",
		Help:      "Total number of failed snapshot computations",
	})
	FeedRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signal_pulse",
		Name:      "feed_requests_total",
		Help:      "Total number of outcome feed requests",
	})
	FeedErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signal_pulse",
		Name:      "feed_errors_total",
		Help:      "Total number of outcome feed failures",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signal_pulse",
		Name:      "cache_hits_total",
		Help:      "Total number of snapshot cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signal_pulse",
		Name:      "cache_misses_total",
		Help:      "Total number of snapshot cache misses",
	})
	ScheduledRefreshesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signal_pulse",
		Name:      "scheduled_refreshes_total",
		Help:      "Total number of scheduled snapshot refreshes",
	})
)

// Gauge metrics
var (
	EvaluatedOutcomes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "signal_pulse",
		Name:      "evaluated_outcomes",
		Help:      "Number of evaluated outcomes in the latest snapshot",
	})
	WinRatePct = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "signal_pulse",
		Name:      "win_rate_pct",
		Help:      "Win rate percentage from the latest snapshot",
	})
	MaxDrawdown = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "signal_pulse",
		Name:      "max_drawdown",
		Help:      "Maximum drawdown from the latest snapshot",
	})
	TotalPnL = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "signal_pulse",
		Name:      "total_pnl",
		Help:      "Cumulative profit and loss from the latest snapshot",
	})
	CurrentStreakLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "signal_pulse",
		Name:      "current_streak_length",
		Help:      "Length of the current win or loss streak",
	})
)

// Histogram metrics
var (
	SnapshotDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "signal_pulse",
		Name:      "snapshot_duration_seconds",
		Help:      "Duration of snapshot computations in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	FeedFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "signal_pulse",
		Name:      "feed_fetch_duration_seconds",
		Help:      "Duration of outcome feed fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(SnapshotsComputedTotal)
		registry.MustRegister(SnapshotErrorsTotal)
		registry.MustRegister(FeedRequestsTotal)
		registry.MustRegister(FeedErrorsTotal)
		registry.MustRegister(CacheHitsTotal)
		registry.MustRegister(CacheMissesTotal)
		registry.MustRegister(ScheduledRefreshesTotal)

		// Register gauge metrics
		registry.MustRegister(EvaluatedOutcomes)
		registry.MustRegister(WinRatePct)
		registry.MustRegister(MaxDrawdown)
		registry.MustRegister(TotalPnL)
		registry.MustRegister(CurrentStreakLength)

		// Register histogram metrics
		registry.MustRegister(SnapshotDuration)
		registry.MustRegister(FeedFetchDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordSnapshotComputed records a completed snapshot computation.
func RecordSnapshotComputed(durationSeconds float64) {
	SnapshotsComputedTotal.Inc()
	SnapshotDuration.Observe(durationSeconds)
}

// RecordSnapshotError records a failed snapshot computation.
func RecordSnapshotError() {
	SnapshotErrorsTotal.Inc()
}

// RecordFeedRequest records an outcome feed request.
func RecordFeedRequest(durationSeconds float64) {
	FeedRequestsTotal.Inc()
	FeedFetchDuration.Observe(durationSeconds)
}

// RecordFeedError records an outcome feed failure.
func RecordFeedError() {
	FeedErrorsTotal.Inc()
}

// RecordCacheHit records a snapshot cache hit.
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a snapshot cache miss.
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordScheduledRefresh records a scheduled snapshot refresh.
func RecordScheduledRefresh() {
	ScheduledRefreshesTotal.Inc()
}

// UpdateSnapshotGauges updates the headline KPI gauges from a snapshot.
func UpdateSnapshotGauges(outcomeCount int, winRatePct, maxDrawdown, totalPnl float64, currentStreak int) {
	EvaluatedOutcomes.Set(float64(outcomeCount))
	WinRatePct.Set(winRatePct)
	MaxDrawdown.Set(maxDrawdown)
	TotalPnL.Set(totalPnl)
	CurrentStreakLength.Set(float64(currentStreak))
}
