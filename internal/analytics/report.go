package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats a snapshot for terminal output
func GenerateConsoleReport(snap *Snapshot) string {
	var builder strings.Builder
	builder.WriteString("Forecast Performance Report\n")
	builder.WriteString("===========================\n")
	builder.WriteString(fmt.Sprintf("Evaluated Outcomes: %d\n", snap.OutcomeCount))
	builder.WriteString(fmt.Sprintf("Total P&L: %.2f\n", snap.Summary.TotalPnl))
	builder.WriteString(fmt.Sprintf("Win Rate: %.2f%%\n", snap.Summary.WinRatePct))
	builder.WriteString(fmt.Sprintf("Profit Factor: %s\n", formatProfitFactor(snap.Summary.ProfitFactor)))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f\n", snap.Summary.MaxDrawdown))
	builder.WriteString(fmt.Sprintf("Best Trade: %.2f / Worst Trade: %.2f\n", snap.Summary.BestTrade, snap.Summary.WorstTrade))
	builder.WriteString(fmt.Sprintf("Avg Confidence: %.2f\n", snap.Summary.AvgConfidence))
	builder.WriteString(fmt.Sprintf("Current Streak: %s x%d\n", snap.Streaks.Current.Type, snap.Streaks.Current.Length))
	builder.WriteString(fmt.Sprintf("Longest Win Streak: %d / Longest Loss Streak: %d\n", snap.Streaks.MaxWinStreak, snap.Streaks.MaxLossStreak))
	if len(snap.RollingAccuracy) > 0 {
		latest := snap.RollingAccuracy[len(snap.RollingAccuracy)-1]
		builder.WriteString(fmt.Sprintf("Rolling Accuracy (last %d): %.2f%%\n", latest.WindowSize, latest.WindowAccuracyPct))
	} else {
		builder.WriteString("Rolling Accuracy: not enough data yet\n")
	}
	for _, bucket := range snap.Calibration.Buckets {
		builder.WriteString(fmt.Sprintf("Calibration %s: predicted %.0f%%, actual %.2f%% (n=%d)\n",
			bucket.Label, bucket.AvgPredictedConfidence*100, bucket.ActualAccuracyPct, bucket.SampleCount))
	}
	for _, cat := range snap.BySentiment {
		builder.WriteString(fmt.Sprintf("Sentiment %s: %d trades, %.2f%% accuracy, pnl %.2f\n",
			cat.Key, cat.Total, cat.AccuracyPct, cat.TotalPnl))
	}
	return builder.String()
}

// ExportJSON writes the full snapshot to a JSON file
func ExportJSON(snap *Snapshot, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// ExportCSV writes the headline metrics for spreadsheets
func ExportCSV(snap *Snapshot, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	csv := "metric,value\n" +
		fmt.Sprintf("total_trades,%d\n", snap.Summary.TotalTrades) +
		fmt.Sprintf("win_rate_pct,%.4f\n", snap.Summary.WinRatePct) +
		fmt.Sprintf("profit_factor,%s\n", formatProfitFactor(snap.Summary.ProfitFactor)) +
		fmt.Sprintf("gross_profit,%.4f\n", snap.Summary.GrossProfit) +
		fmt.Sprintf("gross_loss,%.4f\n", snap.Summary.GrossLoss) +
		fmt.Sprintf("max_drawdown,%.4f\n", snap.Summary.MaxDrawdown) +
		fmt.Sprintf("best_trade,%.4f\n", snap.Summary.BestTrade) +
		fmt.Sprintf("worst_trade,%.4f\n", snap.Summary.WorstTrade) +
		fmt.Sprintf("avg_confidence,%.4f\n", snap.Summary.AvgConfidence) +
		fmt.Sprintf("max_win_streak,%d\n", snap.Streaks.MaxWinStreak) +
		fmt.Sprintf("max_loss_streak,%d\n", snap.Streaks.MaxLossStreak)
	return os.WriteFile(outputPath, []byte(csv), 0o644)
}

func formatProfitFactor(pf float64) string {
	if math.IsInf(pf, 1) {
		return "infinite"
	}
	return fmt.Sprintf("%.2f", pf)
}
