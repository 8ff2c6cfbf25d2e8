package analytics

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/yourusername/signal-pulse/internal/models"
)

// EquityPoint represents a point in the cumulative P&L series
type EquityPoint struct {
	Date          time.Time `json:"date"`
	CumulativePnl float64   `json:"cumulative_pnl"`
}

// EquityCurve represents a time-series of equity points
type EquityCurve []EquityPoint

// BuildEquityCurve computes the running cumulative P&L series, one point per
// evaluated outcome in (prediction date, id) order. Empty input yields an
// empty curve.
func BuildEquityCurve(outcomes []*models.PredictionOutcome) EquityCurve {
	ordered := sortedEvaluated(outcomes)
	curve := make(EquityCurve, 0, len(ordered))

	total := 0.0
	for _, o := range ordered {
		total += o.Pnl()
		curve = append(curve, EquityPoint{
			Date:          o.PredictionDate,
			CumulativePnl: total,
		})
	}

	return curve
}

// FinalPnl returns the cumulative P&L at the end of the curve.
func (e EquityCurve) FinalPnl() float64 {
	if len(e) == 0 {
		return 0
	}
	return e[len(e)-1].CumulativePnl
}

// ToCSV exports the equity curve to a CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("date,cumulative_pnl\n")
	for _, point := range e {
		buf.WriteString(point.Date.Format(time.RFC3339))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(point.CumulativePnl, 'f', 2, 64))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the equity curve to a JSON string
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}
