package metrics

import (
	"math"

	"github.com/leanquant/tearsheet/internal/errors"
	"github.com/leanquant/tearsheet/internal/series"
)

const componentRolling = "rolling"

// RollingSharpe computes the Sharpe ratio over every trailing window of
// exactly `window` returns, using the same formula and zero-denominator
// policy as SharpeRatio. The output has len(returns)-window+1 entries, one
// per valid window position, stamped with the window's last timestamp; the
// first window-1 positions are omitted, not zero-filled.
//
// The window sums are maintained incrementally; results stay within
// floating-point tolerance of a full per-window recompute.
func (e *Engine) RollingSharpe(returns series.Returns, window int) (series.Points, error) {
	n := len(returns)
	if window < 2 || window > n {
		return nil, errors.NewInvalidWindowError(componentRolling,
			"window size %d out of valid range [2, %d]", window, n)
	}

	annualize := math.Sqrt(e.PeriodsPerYear)
	riskFree := e.riskFreePerPeriod()
	w := float64(window)

	points := make(series.Points, 0, n-window+1)
	sum, sumSq := 0.0, 0.0
	for i, p := range returns {
		sum += p.Value
		sumSq += p.Value * p.Value
		if i >= window {
			old := returns[i-window].Value
			sum -= old
			sumSq -= old * old
		}
		if i < window-1 {
			continue
		}

		variance := (sumSq - sum*sum/w) / (w - 1)
		if variance < 0 {
			// guard against tiny negative values from cancellation
			variance = 0
		}
		value := 0.0
		if std := math.Sqrt(variance); std > 0 {
			value = (sum/w - riskFree) / std * annualize
		}
		points = append(points, series.Point{Timestamp: p.Timestamp, Value: value})
	}

	return points, nil
}
