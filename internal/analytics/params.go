package analytics

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"

	"github.com/yourusername/signal-pulse/internal/config"
	"github.com/yourusername/signal-pulse/internal/models"
)

// Default calculator parameters.
const (
	DefaultRollingWindow    = 30
	DefaultBucketWidth      = 0.1
	DefaultMinBucketSamples = 3
)

// Params holds the caller-tunable settings shared by the calculators.
type Params struct {
	RollingWindow    int        `json:"rolling_window"`
	BucketWidth      float64    `json:"bucket_width"`
	MinBucketSamples int        `json:"min_bucket_samples"`
	PeriodKind       PeriodKind `json:"period_kind"`
}

// DefaultParams returns the stock parameter set.
func DefaultParams() Params {
	return Params{
		RollingWindow:    DefaultRollingWindow,
		BucketWidth:      DefaultBucketWidth,
		MinBucketSamples: DefaultMinBucketSamples,
		PeriodKind:       PeriodMonth,
	}
}

// FromConfig converts app config to calculator params
func FromConfig(cfg *config.AnalyticsConfig) (Params, error) {
	if cfg == nil {
		return Params{}, fmt.Errorf("analytics config is required")
	}

	p := Params{
		RollingWindow:    cfg.RollingWindow,
		BucketWidth:      cfg.CalibrationBucketWidth,
		MinBucketSamples: cfg.CalibrationMinSamples,
		PeriodKind:       PeriodKind(cfg.PeriodGrouping),
	}

	return p, p.Validate()
}

// Validate rejects out-of-domain parameters at the call boundary, before any
// computation starts.
func (p Params) Validate() error {
	if p.RollingWindow <= 0 {
		return fmt.Errorf("%w: rolling window must be positive, got %d", models.ErrInvalidParameter, p.RollingWindow)
	}
	if math.IsNaN(p.BucketWidth) || math.IsInf(p.BucketWidth, 0) {
		return fmt.Errorf("%w: bucket width must be finite", models.ErrInvalidParameter)
	}
	if p.BucketWidth <= 0 || p.BucketWidth > 1 {
		return fmt.Errorf("%w: bucket width must be in (0, 1], got %v", models.ErrInvalidParameter, p.BucketWidth)
	}
	if p.MinBucketSamples < 0 {
		return fmt.Errorf("%w: min bucket samples cannot be negative, got %d", models.ErrInvalidParameter, p.MinBucketSamples)
	}
	if !p.PeriodKind.IsValid() {
		return fmt.Errorf("%w: unknown period grouping %q", models.ErrInvalidParameter, p.PeriodKind)
	}
	return nil
}

// Hash creates a stable digest of the parameter set, used as part of result
// cache keys.
func (p Params) Hash() string {
	data, _ := json.Marshal(p)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}
