package analytics

import (
	"encoding/json"
	"math"

	"github.com/yourusername/signal-pulse/internal/models"
)

// ProfitFactorInfinite marks a record with gross profit and no gross loss.
var ProfitFactorInfinite = math.Inf(1)

// SummaryStats represents the top-level KPIs over the full input set.
// All fields are zero for an empty input, never an error.
type SummaryStats struct {
	TotalTrades   int     `json:"total_trades"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRatePct    float64 `json:"win_rate_pct"`
	GrossProfit   float64 `json:"gross_profit"`
	GrossLoss     float64 `json:"gross_loss"`
	ProfitFactor  float64 `json:"profit_factor"`
	BestTrade     float64 `json:"best_trade"`
	WorstTrade    float64 `json:"worst_trade"`
	TotalPnl      float64 `json:"total_pnl"`
	AvgConfidence float64 `json:"avg_confidence"`
	MaxDrawdown   float64 `json:"max_drawdown"`
}

// Summarize computes the headline statistics over every evaluated outcome.
// Max drawdown is delegated to AnalyzeDrawdown so both views agree.
func Summarize(outcomes []*models.PredictionOutcome) SummaryStats {
	ordered := sortedEvaluated(outcomes)
	stats := SummaryStats{}
	if len(ordered) == 0 {
		return stats
	}

	confidences := make([]float64, 0, len(ordered))
	for i, o := range ordered {
		stats.TotalTrades++
		if o.IsWin() {
			stats.Wins++
		} else {
			stats.Losses++
		}

		pnl := o.Pnl()
		stats.TotalPnl += pnl
		if pnl > 0 {
			stats.GrossProfit += pnl
		} else if pnl < 0 {
			stats.GrossLoss += math.Abs(pnl)
		}
		if i == 0 || pnl > stats.BestTrade {
			stats.BestTrade = pnl
		}
		if i == 0 || pnl < stats.WorstTrade {
			stats.WorstTrade = pnl
		}

		confidences = append(confidences, o.Confidence)
	}

	stats.WinRatePct = float64(stats.Wins) / float64(stats.TotalTrades) * 100
	stats.ProfitFactor = profitFactor(stats.GrossProfit, stats.GrossLoss)
	stats.AvgConfidence = mean(confidences)
	stats.MaxDrawdown = AnalyzeDrawdown(ordered).MaxDrawdown()

	return stats
}

// profitFactor returns gross profit over gross loss. A record with wins and
// no losing trades is the infinite sentinel; no trades at all is 0.
func profitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss == 0 {
		if grossProfit > 0 {
			return ProfitFactorInfinite
		}
		return 0
	}
	return grossProfit / grossLoss
}

// MarshalJSON renders an infinite profit factor as the string "infinite" so
// encoding never fails on +Inf.
func (s SummaryStats) MarshalJSON() ([]byte, error) {
	type alias SummaryStats
	payload := struct {
		alias
		ProfitFactor any `json:"profit_factor"`
	}{alias: alias(s), ProfitFactor: s.ProfitFactor}
	if math.IsInf(s.ProfitFactor, 1) {
		payload.ProfitFactor = "infinite"
	}
	return json.Marshal(payload)
}
