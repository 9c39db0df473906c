package metrics

import (
	"math"

	"github.com/leanquant/tearsheet/internal/errors"
	"github.com/leanquant/tearsheet/internal/series"
)

const componentEngine = "metrics"

// Bundle holds the full performance statistics of one backtest. Every field is
// always populated for a non-empty input; degenerate inputs (zero volatility,
// no losing trades, empty trade log) produce the documented zero sentinels
// instead of NaN or infinities.
type Bundle struct {
	TotalReturn          float64 `json:"total_return"`
	AnnualizedReturn     float64 `json:"annualized_return"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	SortinoRatio         float64 `json:"sortino_ratio"`
	CalmarRatio          float64 `json:"calmar_ratio"`
	MaxDrawdown          float64 `json:"max_drawdown"`
	WinRate              float64 `json:"win_rate"`
	TotalTrades          int     `json:"total_trades"`
	WinningTrades        int     `json:"winning_trades"`
	LosingTrades         int     `json:"losing_trades"`
}

// Engine computes performance statistics from a returns sequence and trade
// log. The annualization factor is a caller-supplied configuration value
// (252 for daily data, 8760 for hourly), never inferred from the data.
type Engine struct {
	PeriodsPerYear float64
	RiskFreeRate   float64 // annual risk-free rate, default 0
}

// NewEngine creates a metrics engine for the given data frequency.
func NewEngine(periodsPerYear, riskFreeRate float64) *Engine {
	return &Engine{
		PeriodsPerYear: periodsPerYear,
		RiskFreeRate:   riskFreeRate,
	}
}

// Compute assembles the full bundle from an equity curve, its derived returns
// and the trade log. Fails with an insufficient-data error when the equity
// curve has fewer than two points; every other degenerate input yields the
// documented sentinel values.
func (e *Engine) Compute(equity []series.EquityPoint, returns series.Returns, trades []series.Trade) (*Bundle, error) {
	totalReturn, err := TotalReturn(equity)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{
		TotalReturn:          totalReturn,
		AnnualizedReturn:     e.AnnualizedReturn(totalReturn, len(returns)),
		AnnualizedVolatility: e.AnnualizedVolatility(returns),
		SharpeRatio:          e.SharpeRatio(returns),
		SortinoRatio:         e.SortinoRatio(returns),
		MaxDrawdown:          MaxDrawdown(equity),
	}
	bundle.CalmarRatio = calmar(bundle.AnnualizedReturn, bundle.MaxDrawdown)

	bundle.TotalTrades = len(trades)
	for _, t := range trades {
		switch {
		case t.ProfitLoss > 0:
			bundle.WinningTrades++
		case t.ProfitLoss < 0:
			bundle.LosingTrades++
		}
	}
	if bundle.TotalTrades > 0 {
		bundle.WinRate = float64(bundle.WinningTrades) / float64(bundle.TotalTrades)
	}

	return bundle, nil
}

// TotalReturn is the overall growth of the equity curve, final/initial - 1.
// Requires at least two equity points.
func TotalReturn(equity []series.EquityPoint) (float64, error) {
	if len(equity) < 2 {
		return 0, errors.NewInsufficientDataError(componentEngine,
			"total return requires at least 2 equity points, got %d", len(equity))
	}
	return equity[len(equity)-1].Value/equity[0].Value - 1, nil
}

// AnnualizedReturn compounds the total return to yearly terms over nPeriods
// return periods. Zero when no periods exist.
func (e *Engine) AnnualizedReturn(totalReturn float64, nPeriods int) float64 {
	if nPeriods == 0 {
		return 0
	}
	return math.Pow(1+totalReturn, e.PeriodsPerYear/float64(nPeriods)) - 1
}

// AnnualizedVolatility is the sample standard deviation of the returns scaled
// by the square root of the annualization factor. Zero for fewer than two
// returns.
func (e *Engine) AnnualizedVolatility(returns series.Returns) float64 {
	return sampleStdDev(returns.Values()) * math.Sqrt(e.PeriodsPerYear)
}

// SharpeRatio is the annualized mean excess return over volatility.
// Zero volatility yields 0, not NaN or infinity.
func (e *Engine) SharpeRatio(returns series.Returns) float64 {
	values := returns.Values()
	std := sampleStdDev(values)
	if std == 0 {
		return 0
	}
	return (mean(values) - e.riskFreePerPeriod()) / std * math.Sqrt(e.PeriodsPerYear)
}

// SortinoRatio is the Sharpe variant whose denominator is the sample standard
// deviation of the negative returns only. Zero when no negative returns exist.
func (e *Engine) SortinoRatio(returns series.Returns) float64 {
	values := returns.Values()
	var downside []float64
	for _, v := range values {
		if v < 0 {
			downside = append(downside, v)
		}
	}
	std := sampleStdDev(downside)
	if std == 0 {
		return 0
	}
	return (mean(values) - e.riskFreePerPeriod()) / std * math.Sqrt(e.PeriodsPerYear)
}

func (e *Engine) riskFreePerPeriod() float64 {
	if e.PeriodsPerYear == 0 {
		return 0
	}
	return e.RiskFreeRate / e.PeriodsPerYear
}

// calmar divides the annualized return by the drawdown magnitude; a flat
// drawdown yields 0.
func calmar(annualizedReturn, maxDrawdown float64) float64 {
	if maxDrawdown == 0 {
		return 0
	}
	return annualizedReturn / math.Abs(maxDrawdown)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev uses the n-1 denominator; fewer than two values yield 0.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	avg := mean(values)
	sumSquares := 0.0
	for _, v := range values {
		diff := v - avg
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}
