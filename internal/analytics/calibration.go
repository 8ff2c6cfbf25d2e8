package analytics

import (
	"fmt"
	"math"

	"github.com/yourusername/signal-pulse/internal/models"
)

// CalibrationBucket compares stated confidence against realized accuracy for
// one confidence range. A well-calibrated forecaster has ActualAccuracyPct
// close to AvgPredictedConfidence*100 in every bucket.
type CalibrationBucket struct {
	Label                  string  `json:"label"`
	Midpoint               float64 `json:"midpoint"`
	AvgPredictedConfidence float64 `json:"avg_predicted_confidence"`
	ActualAccuracyPct      float64 `json:"actual_accuracy_pct"`
	SampleCount            int     `json:"sample_count"`
}

// CalibrationParams tunes the bucketing of confidence values.
type CalibrationParams struct {
	// BucketWidth partitions [0,1] into fixed-width buckets.
	BucketWidth float64
	// MinSamples suppresses buckets with fewer samples from the output.
	MinSamples int
}

// DefaultCalibrationParams returns the stock bucketing settings.
func DefaultCalibrationParams() CalibrationParams {
	return CalibrationParams{BucketWidth: DefaultBucketWidth, MinSamples: DefaultMinBucketSamples}
}

// CalibrationResult holds the reliable buckets plus the pre-filtering total.
// TotalSamples counts every evaluated outcome, including those in suppressed
// buckets, so it always equals the input size.
type CalibrationResult struct {
	Buckets      []CalibrationBucket `json:"buckets"`
	TotalSamples int                 `json:"total_samples"`
}

// Calibrate assigns each outcome to a fixed-width confidence bucket and
// compares the bucket's mean stated confidence to its realized accuracy.
// Buckets under the minimum sample count are statistically unreliable and
// left out of Buckets, but still counted in TotalSamples.
func Calibrate(outcomes []*models.PredictionOutcome, params CalibrationParams) (CalibrationResult, error) {
	if math.IsNaN(params.BucketWidth) || math.IsInf(params.BucketWidth, 0) {
		return CalibrationResult{}, fmt.Errorf("%w: bucket width must be finite", models.ErrInvalidParameter)
	}
	if params.BucketWidth <= 0 || params.BucketWidth > 1 {
		return CalibrationResult{}, fmt.Errorf("%w: bucket width must be in (0, 1], got %v", models.ErrInvalidParameter, params.BucketWidth)
	}
	if params.MinSamples < 0 {
		return CalibrationResult{}, fmt.Errorf("%w: min samples cannot be negative, got %d", models.ErrInvalidParameter, params.MinSamples)
	}

	numBuckets := int(math.Ceil(1.0 / params.BucketWidth))

	type accumulator struct {
		count   int
		correct int
		confSum float64
	}
	buckets := make([]accumulator, numBuckets)

	result := CalibrationResult{Buckets: []CalibrationBucket{}}
	for _, o := range outcomes {
		if o == nil || !o.IsEvaluated() {
			continue
		}
		idx := int(o.Confidence / params.BucketWidth)
		if idx < 0 {
			// out-of-range confidence from an unvalidated feed clamps to
			// the bottom bucket instead of panicking
			idx = 0
		}
		if idx >= numBuckets {
			// confidence of exactly 1.0 lands in the top bucket
			idx = numBuckets - 1
		}
		buckets[idx].count++
		if o.IsWin() {
			buckets[idx].correct++
		}
		buckets[idx].confSum += o.Confidence
		result.TotalSamples++
	}

	for i, acc := range buckets {
		if acc.count == 0 || acc.count < params.MinSamples {
			continue
		}
		lo := float64(i) * params.BucketWidth
		hi := math.Min(lo+params.BucketWidth, 1.0)
		result.Buckets = append(result.Buckets, CalibrationBucket{
			Label:                  fmt.Sprintf("%.0f-%.0f%%", lo*100, hi*100),
			Midpoint:               (lo + hi) / 2,
			AvgPredictedConfidence: acc.confSum / float64(acc.count),
			ActualAccuracyPct:      float64(acc.correct) / float64(acc.count) * 100,
			SampleCount:            acc.count,
		})
	}

	return result, nil
}
