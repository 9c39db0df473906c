package lean

import (
	"github.com/leanquant/tearsheet/internal/series"
)

// Result is the in-memory form of one LEAN backtest, validated once at load
// time so downstream computations never re-check shape.
type Result struct {
	Equity []series.EquityPoint
	Trades []series.Trade
	Config AlgorithmConfiguration
}

// AlgorithmConfiguration carries the backtest metadata used for report
// headers and benchmark date filtering.
type AlgorithmConfiguration struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// resultFile mirrors the subset of the LEAN result JSON the loader consumes.
type resultFile struct {
	Charts           map[string]chart       `json:"charts"`
	TotalPerformance *performance           `json:"totalPerformance"`
	Config           AlgorithmConfiguration `json:"algorithmConfiguration"`
}

type chart struct {
	Series map[string]chartSeries `json:"series"`
}

type chartSeries struct {
	// Each row is [unixSeconds, open, high, low, close] for candlestick
	// series or [unixSeconds, value] for scalar series.
	Values [][]float64 `json:"values"`
}

type performance struct {
	ClosedTrades []closedTrade `json:"closedTrades"`
}

type closedTrade struct {
	EntryTime  string  `json:"entryTime"`
	ExitTime   string  `json:"exitTime"`
	ProfitLoss float64 `json:"profitLoss"`
	TotalFees  float64 `json:"totalFees"`
}
