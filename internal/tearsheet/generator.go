package tearsheet

import (
	"log"
	"time"

	"github.com/leanquant/tearsheet/internal/errors"
	"github.com/leanquant/tearsheet/internal/metrics"
	"github.com/leanquant/tearsheet/internal/monitoring"
	"github.com/leanquant/tearsheet/internal/series"
	"github.com/leanquant/tearsheet/pkg/data"
	"github.com/leanquant/tearsheet/pkg/lean"
)

// configDateLayouts covers the date formats LEAN emits in
// algorithmConfiguration start/end fields.
var configDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// benchmarkBaseValue normalizes the synthetic benchmark equity curve; only
// relative moves matter for the computed statistics.
const benchmarkBaseValue = 100.0

// Options configures one tearsheet generation run.
type Options struct {
	PeriodsPerYear float64 // annualization factor, e.g. 252 daily, 8760 hourly
	RiskFreeRate   float64 // annual risk-free rate
	RollingWindow  int     // trailing window for the rolling Sharpe chart
}

// Generator runs the full tearsheet pipeline for a single backtest: load the
// LEAN result, derive returns, compute the metric bundle and chart series,
// and optionally align a benchmark. One generation request processes one
// backtest; generators share no state and are safe to use independently.
type Generator struct {
	backtestDir   string
	benchmarkPath string
	opts          Options
	engine        *metrics.Engine
	provider      *data.BenchmarkProvider
}

// Benchmark holds the benchmark side of a tearsheet, timestamp-aligned to the
// strategy returns.
type Benchmark struct {
	Metrics       *metrics.Bundle
	Returns       series.Returns
	Equity        []series.EquityPoint
	Drawdown      series.Points
	RollingSharpe series.Points
}

// Tearsheet is the complete bundle consumed by the report renderers.
type Tearsheet struct {
	Config        lean.AlgorithmConfiguration
	Metrics       *metrics.Bundle
	Equity        []series.EquityPoint
	Returns       series.Returns
	Drawdown      series.Points
	RollingSharpe series.Points
	Trades        []series.Trade
	Benchmark     *Benchmark
}

// New creates a generator for the given LEAN backtest directory. An empty
// benchmarkPath disables the benchmark comparison.
func New(backtestDir, benchmarkPath string, opts Options) *Generator {
	return &Generator{
		backtestDir:   backtestDir,
		benchmarkPath: benchmarkPath,
		opts:          opts,
		engine:        metrics.NewEngine(opts.PeriodsPerYear, opts.RiskFreeRate),
		provider:      data.NewBenchmarkProvider(),
	}
}

// Generate runs the pipeline and returns the complete tearsheet bundle.
// Errors propagate to the caller untouched; there is no partial-result mode.
func (g *Generator) Generate() (*Tearsheet, error) {
	loadStart := time.Now()
	result, err := lean.Load(g.backtestDir)
	if err != nil {
		monitoring.RecordError(string(errors.CategoryOf(err)))
		return nil, err
	}
	monitoring.ObserveStage("load", time.Since(loadStart))

	computeStart := time.Now()
	sheet, err := g.compute(result)
	if err != nil {
		monitoring.RecordError(string(errors.CategoryOf(err)))
		return nil, err
	}
	monitoring.ObserveStage("compute", time.Since(computeStart))
	monitoring.RecordTearsheet()

	return sheet, nil
}

func (g *Generator) compute(result *lean.Result) (*Tearsheet, error) {
	returns, err := series.FromEquity(result.Equity)
	if err != nil {
		return nil, err
	}

	bundle, err := g.engine.Compute(result.Equity, returns, result.Trades)
	if err != nil {
		return nil, err
	}

	rolling, err := g.engine.RollingSharpe(returns, g.opts.RollingWindow)
	if err != nil {
		return nil, err
	}

	sheet := &Tearsheet{
		Config:        result.Config,
		Metrics:       bundle,
		Equity:        result.Equity,
		Returns:       returns,
		Drawdown:      metrics.DrawdownSeries(result.Equity),
		RollingSharpe: rolling,
		Trades:        result.Trades,
	}

	if g.benchmarkPath != "" {
		benchmark, err := g.computeBenchmark(result, returns)
		if err != nil {
			return nil, err
		}
		sheet.Benchmark = benchmark
	}

	return sheet, nil
}

func (g *Generator) computeBenchmark(result *lean.Result, strategyReturns series.Returns) (*Benchmark, error) {
	start := parseConfigDate(result.Config.StartDate)
	end := parseConfigDate(result.Config.EndDate)

	prices, err := g.provider.LoadPrices(g.benchmarkPath, start, end)
	if err != nil {
		return nil, err
	}

	benchReturns, err := series.FromEquity(prices)
	if err != nil {
		return nil, err
	}

	_, aligned, err := series.Align(strategyReturns, benchReturns)
	if err != nil {
		return nil, err
	}

	// Rebuild a synthetic curve from the aligned returns so the drawdown and
	// total return reflect exactly the compared points. The base point is
	// stamped at the strategy curve start, which always precedes the first
	// aligned return.
	equity := make([]series.EquityPoint, 0, len(aligned)+1)
	equity = append(equity, series.EquityPoint{
		Timestamp: result.Equity[0].Timestamp,
		Value:     benchmarkBaseValue,
	})
	equity = append(equity, series.EquityFromReturns(benchmarkBaseValue, aligned)...)

	bundle, err := g.engine.Compute(equity, aligned, nil)
	if err != nil {
		return nil, err
	}

	benchmark := &Benchmark{
		Metrics:  bundle,
		Returns:  aligned,
		Equity:   equity,
		Drawdown: metrics.DrawdownSeries(equity),
	}

	rolling, err := g.engine.RollingSharpe(aligned, g.opts.RollingWindow)
	if err != nil {
		// The aligned benchmark can be shorter than the strategy series; a
		// window that no longer fits drops the benchmark rolling chart only.
		log.Printf("⚠️ Skipping benchmark rolling Sharpe: %v", err)
	} else {
		benchmark.RollingSharpe = rolling
	}

	return benchmark, nil
}

func parseConfigDate(value string) time.Time {
	for _, layout := range configDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
