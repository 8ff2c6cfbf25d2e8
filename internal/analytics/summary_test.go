package analytics

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/yourusername/signal-pulse/internal/models"
)

func TestSummarizeHeadlineStats(t *testing.T) {
	outcomes := []*models.PredictionOutcome{
		evaluated(1, true, 50),
		evaluated(2, true, 30),
		evaluated(3, false, -20),
	}

	stats := Summarize(outcomes)
	if stats.TotalTrades != 3 || stats.Wins != 2 || stats.Losses != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if !almostEqual(stats.WinRatePct, 200.0/3.0) {
		t.Errorf("expected win rate %.4f, got %.4f", 200.0/3.0, stats.WinRatePct)
	}
	if !almostEqual(stats.GrossProfit, 80) {
		t.Errorf("expected gross profit 80, got %.2f", stats.GrossProfit)
	}
	if !almostEqual(stats.GrossLoss, 20) {
		t.Errorf("expected gross loss 20, got %.2f", stats.GrossLoss)
	}
	if !almostEqual(stats.ProfitFactor, 4) {
		t.Errorf("expected profit factor 4, got %.2f", stats.ProfitFactor)
	}
	if !almostEqual(stats.BestTrade, 50) || !almostEqual(stats.WorstTrade, -20) {
		t.Errorf("unexpected best/worst: %.2f / %.2f", stats.BestTrade, stats.WorstTrade)
	}
	if !almostEqual(stats.TotalPnl, 60) {
		t.Errorf("expected total pnl 60, got %.2f", stats.TotalPnl)
	}
	if !almostEqual(stats.MaxDrawdown, -20) {
		t.Errorf("expected max drawdown -20, got %.2f", stats.MaxDrawdown)
	}
}

func TestSummarizeAllLosses(t *testing.T) {
	outcomes := []*models.PredictionOutcome{
		evaluated(1, false, -10),
		evaluated(2, false, -30),
	}

	stats := Summarize(outcomes)
	if !almostEqual(stats.GrossProfit, 0) {
		t.Errorf("expected zero gross profit, got %.2f", stats.GrossProfit)
	}
	if !almostEqual(stats.ProfitFactor, 0) {
		t.Errorf("expected profit factor 0 with no gross profit, got %.2f", stats.ProfitFactor)
	}
	if !almostEqual(stats.WinRatePct, 0) {
		t.Errorf("expected 0%% win rate, got %.2f", stats.WinRatePct)
	}
}

func TestSummarizeInfiniteProfitFactor(t *testing.T) {
	outcomes := []*models.PredictionOutcome{
		evaluated(1, true, 10),
		evaluated(2, true, 20),
	}

	stats := Summarize(outcomes)
	if !math.IsInf(stats.ProfitFactor, 1) {
		t.Errorf("expected infinite profit factor, got %.2f", stats.ProfitFactor)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	stats := Summarize(nil)
	if stats.TotalTrades != 0 {
		t.Errorf("expected zero trades, got %d", stats.TotalTrades)
	}
	if stats.ProfitFactor != 0 {
		t.Errorf("expected zero profit factor, got %.2f", stats.ProfitFactor)
	}
	if stats.WinRatePct != 0 {
		t.Errorf("expected zero win rate, got %.2f", stats.WinRatePct)
	}
}

func TestSummaryStatsJSONInfiniteSentinel(t *testing.T) {
	stats := Summarize([]*models.PredictionOutcome{
		evaluated(1, true, 10),
	})

	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("expected marshal to succeed, got %v", err)
	}
	if !strings.Contains(string(data), `"profit_factor":"infinite"`) {
		t.Errorf("expected infinite sentinel in JSON, got %s", data)
	}
}

func TestSummaryStatsJSONFiniteProfitFactor(t *testing.T) {
	stats := Summarize([]*models.PredictionOutcome{
		evaluated(1, true, 40),
		evaluated(2, false, -10),
	})

	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("expected marshal to succeed, got %v", err)
	}
	if !strings.Contains(string(data), `"profit_factor":4`) {
		t.Errorf("expected numeric profit factor in JSON, got %s", data)
	}
}

func TestSummarizeBreakEvenTradeCountsAsLoss(t *testing.T) {
	// an incorrect forecast with zero pnl is a loss by count but adds to
	// neither gross side
	outcomes := []*models.PredictionOutcome{
		evaluated(1, false, 0),
		evaluated(2, true, 10),
	}

	stats := Summarize(outcomes)
	if stats.Losses != 1 {
		t.Errorf("expected 1 loss, got %d", stats.Losses)
	}
	if !almostEqual(stats.GrossLoss, 0) {
		t.Errorf("expected zero gross loss, got %.2f", stats.GrossLoss)
	}
	if !math.IsInf(stats.ProfitFactor, 1) {
		t.Errorf("expected infinite profit factor, got %.2f", stats.ProfitFactor)
	}
}
