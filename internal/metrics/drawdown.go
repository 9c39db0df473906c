package metrics

import (
	"github.com/leanquant/tearsheet/internal/series"
)

// MaxDrawdown is the deepest percentage decline from a running equity peak,
// computed directly from the equity curve rather than from compounded returns.
// Always <= 0; exactly 0 for a non-decreasing curve.
func MaxDrawdown(equity []series.EquityPoint) float64 {
	maxDD := 0.0
	runningMax := 0.0
	for _, p := range equity {
		if p.Value > runningMax {
			runningMax = p.Value
		}
		dd := p.Value/runningMax - 1
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// DrawdownSeries is the per-point decline from the running equity peak, used
// to chart drawdown over time. Same length and time index as the equity curve.
func DrawdownSeries(equity []series.EquityPoint) series.Points {
	points := make(series.Points, 0, len(equity))
	runningMax := 0.0
	for _, p := range equity {
		if p.Value > runningMax {
			runningMax = p.Value
		}
		points = append(points, series.Point{
			Timestamp: p.Timestamp,
			Value:     p.Value/runningMax - 1,
		})
	}
	return points
}
