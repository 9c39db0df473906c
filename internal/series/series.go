package series

import "time"

// Package series holds the strongly-typed time series records shared by the
// tearsheet pipeline. Shapes are validated once at the loader boundary;
// downstream computations never re-check them.

// EquityPoint is a single portfolio valuation on the equity curve.
// Sequences of EquityPoint are ordered by strictly increasing timestamps.
type EquityPoint struct {
	Timestamp time.Time
	Value     float64
}

// Trade is a single closed round trip. Trades feed the trade statistics only;
// returns are always derived from the equity curve.
type Trade struct {
	EntryTime  time.Time
	ExitTime   time.Time
	ProfitLoss float64
	Fees       float64
}

// Point is a generic (timestamp, value) sample used for returns, drawdown and
// rolling statistic series.
type Point struct {
	Timestamp time.Time
	Value     float64
}

// Returns is an ordered sequence of periodic returns, one per consecutive
// equity pair. Its length is always len(equity)-1.
type Returns []Point

// Points is an ordered sequence of derived (timestamp, value) samples.
type Points []Point

// Timestamps returns the time index of the sequence.
func (r Returns) Timestamps() []time.Time {
	ts := make([]time.Time, len(r))
	for i, p := range r {
		ts[i] = p.Timestamp
	}
	return ts
}

// Values returns the raw values of the sequence.
func (r Returns) Values() []float64 {
	vs := make([]float64, len(r))
	for i, p := range r {
		vs[i] = p.Value
	}
	return vs
}

// Values returns the raw values of the sequence.
func (p Points) Values() []float64 {
	vs := make([]float64, len(p))
	for i, s := range p {
		vs[i] = s.Value
	}
	return vs
}
