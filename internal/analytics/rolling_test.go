package analytics

import (
	"errors"
	"testing"

	"github.com/yourusername/signal-pulse/internal/models"
)

func TestRollingAccuracyEmitsOnePointPerFullWindow(t *testing.T) {
	// 35 outcomes with window 30 leaves exactly 6 full windows
	outcomes := make([]*models.PredictionOutcome, 0, 35)
	for day := 1; day <= 35; day++ {
		outcomes = append(outcomes, evaluated(day, day%2 == 0, 10))
	}

	points, err := RollingAccuracy(outcomes, 30)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}

	for i, p := range points {
		if p.WindowSize != 30 {
			t.Errorf("point %d: expected window size 30, got %d", i, p.WindowSize)
		}
	}
	if points[0].Date.Day() != 30 {
		t.Errorf("expected first point on day 30, got day %d", points[0].Date.Day())
	}
	if points[5].Date.Day() != 35 {
		t.Errorf("expected last point on day 35, got day %d", points[5].Date.Day())
	}
}

func TestRollingAccuracyAllCorrect(t *testing.T) {
	outcomes := make([]*models.PredictionOutcome, 0, 10)
	for day := 1; day <= 10; day++ {
		outcomes = append(outcomes, evaluated(day, true, 10))
	}

	points, err := RollingAccuracy(outcomes, 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for i, p := range points {
		if !almostEqual(p.WindowAccuracyPct, 100) {
			t.Errorf("point %d: expected 100%%, got %.2f", i, p.WindowAccuracyPct)
		}
		if p.WindowCorrectCount != 5 {
			t.Errorf("point %d: expected 5 correct, got %d", i, p.WindowCorrectCount)
		}
	}
}

func TestRollingAccuracySlidesWindow(t *testing.T) {
	// W W W W L: window 4 gives 100% then 75%
	outcomes := []*models.PredictionOutcome{
		evaluated(1, true, 10),
		evaluated(2, true, 10),
		evaluated(3, true, 10),
		evaluated(4, true, 10),
		evaluated(5, false, -10),
	}

	points, err := RollingAccuracy(outcomes, 4)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if !almostEqual(points[0].WindowAccuracyPct, 100) {
		t.Errorf("expected first window 100%%, got %.2f", points[0].WindowAccuracyPct)
	}
	if !almostEqual(points[1].WindowAccuracyPct, 75) {
		t.Errorf("expected second window 75%%, got %.2f", points[1].WindowAccuracyPct)
	}
}

func TestRollingAccuracyInsufficientData(t *testing.T) {
	outcomes := []*models.PredictionOutcome{
		evaluated(1, true, 10),
		evaluated(2, false, -10),
	}

	points, err := RollingAccuracy(outcomes, 30)
	if err != nil {
		t.Fatalf("insufficient data must not be an error, got %v", err)
	}
	if points == nil {
		t.Fatal("expected empty non-nil slice")
	}
	if len(points) != 0 {
		t.Errorf("expected no points, got %d", len(points))
	}
}

func TestRollingAccuracyInvalidWindow(t *testing.T) {
	for _, window := range []int{0, -5} {
		_, err := RollingAccuracy(nil, window)
		if err == nil {
			t.Errorf("window %d: expected error", window)
			continue
		}
		if !errors.Is(err, models.ErrInvalidParameter) {
			t.Errorf("window %d: expected ErrInvalidParameter, got %v", window, err)
		}
	}
}
