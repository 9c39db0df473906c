package series

import (
	"github.com/leanquant/tearsheet/internal/errors"
)

const componentReturns = "returns"

// FromEquity derives the periodic simple returns from an equity curve.
// The result has exactly len(equity)-1 entries, one per consecutive pair.
// A zero previous value makes the return undefined and is reported as a
// malformed-data error, never silently skipped.
func FromEquity(equity []EquityPoint) (Returns, error) {
	if len(equity) < 2 {
		return Returns{}, nil
	}

	returns := make(Returns, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Value
		if prev == 0 {
			return nil, errors.NewMalformedDataError(componentReturns,
				"zero equity value at %s makes the following return undefined",
				equity[i-1].Timestamp.Format("2006-01-02 15:04:05"))
		}
		returns = append(returns, Point{
			Timestamp: equity[i].Timestamp,
			Value:     equity[i].Value/prev - 1,
		})
	}

	return returns, nil
}

// EquityFromReturns rebuilds a synthetic equity curve from a returns sequence
// by compounding from the given starting value. Used to chart benchmark
// performance where only returns are available.
func EquityFromReturns(start float64, returns Returns) []EquityPoint {
	equity := make([]EquityPoint, 0, len(returns))
	value := start
	for _, r := range returns {
		value *= 1 + r.Value
		equity = append(equity, EquityPoint{Timestamp: r.Timestamp, Value: value})
	}
	return equity
}
