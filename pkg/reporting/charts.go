package reporting

import (
	"fmt"
	"time"

	"github.com/vicanso/go-charts/v2"

	"github.com/leanquant/tearsheet/internal/series"
	"github.com/leanquant/tearsheet/internal/tearsheet"
)

const chartSplitNumber = 8

// renderEquityChart draws the cumulative performance comparison, both curves
// normalized to 100 at the start.
func renderEquityChart(sheet *tearsheet.Tearsheet) ([]byte, error) {
	labels := timeLabels(equityTimestamps(sheet.Equity))

	base := sheet.Equity[0].Value
	strategy := make([]float64, len(sheet.Equity))
	for i, p := range sheet.Equity {
		strategy[i] = p.Value / base * 100
	}

	values := [][]float64{strategy}
	names := []string{"Strategy"}
	if sheet.Benchmark != nil {
		values = append(values, forwardFill(sheet.Equity, sheet.Benchmark.Equity))
		names = append(names, "Benchmark")
	}

	return renderLines("Cumulative Returns", "normalized to 100", labels, values, names)
}

// renderDrawdownChart draws the drawdown-over-time comparison in percent.
func renderDrawdownChart(sheet *tearsheet.Tearsheet) ([]byte, error) {
	labels := timeLabels(pointTimestamps(sheet.Drawdown))

	strategy := make([]float64, len(sheet.Drawdown))
	for i, p := range sheet.Drawdown {
		strategy[i] = p.Value * 100
	}

	values := [][]float64{strategy}
	names := []string{"Strategy DD"}
	if sheet.Benchmark != nil {
		benchEquity := make([]series.EquityPoint, len(sheet.Benchmark.Drawdown))
		for i, p := range sheet.Benchmark.Drawdown {
			benchEquity[i] = series.EquityPoint{Timestamp: p.Timestamp, Value: p.Value * 100}
		}
		strategyIndex := make([]series.EquityPoint, len(sheet.Drawdown))
		for i, p := range sheet.Drawdown {
			strategyIndex[i] = series.EquityPoint{Timestamp: p.Timestamp}
		}
		values = append(values, forwardFill(strategyIndex, benchEquity))
		names = append(names, "Benchmark DD")
	}

	return renderLines("Drawdown", "percent decline from running peak", labels, values, names)
}

// renderRollingSharpeChart draws the rolling Sharpe series with a dashed-in
// average reference line per series.
func renderRollingSharpeChart(sheet *tearsheet.Tearsheet) ([]byte, error) {
	labels := timeLabels(pointTimestamps(sheet.RollingSharpe))

	strategy := sheet.RollingSharpe.Values()
	avg := meanOf(strategy)

	values := [][]float64{strategy, constantLine(avg, len(strategy))}
	names := []string{"Strategy", fmt.Sprintf("Strat Avg (%.2f)", avg)}

	if sheet.Benchmark != nil && len(sheet.Benchmark.RollingSharpe) > 0 {
		strategyIndex := make([]series.EquityPoint, len(sheet.RollingSharpe))
		for i, p := range sheet.RollingSharpe {
			strategyIndex[i] = series.EquityPoint{Timestamp: p.Timestamp}
		}
		benchPoints := make([]series.EquityPoint, len(sheet.Benchmark.RollingSharpe))
		for i, p := range sheet.Benchmark.RollingSharpe {
			benchPoints[i] = series.EquityPoint{Timestamp: p.Timestamp, Value: p.Value}
		}
		bench := forwardFill(strategyIndex, benchPoints)
		benchAvg := meanOf(sheet.Benchmark.RollingSharpe.Values())
		values = append(values, bench, constantLine(benchAvg, len(strategy)))
		names = append(names, "Benchmark", fmt.Sprintf("Bench Avg (%.2f)", benchAvg))
	}

	return renderLines("Rolling Sharpe", "trailing window", labels, values, names)
}

func renderLines(title, subtitle string, labels []string, values [][]float64, names []string) ([]byte, error) {
	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
	}

	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: chartSplitNumber}),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// forwardFill maps sparse benchmark points onto the strategy time index so
// both series share one x axis; gaps repeat the last known value.
func forwardFill(index []series.EquityPoint, sparse []series.EquityPoint) []float64 {
	byTime := make(map[int64]float64, len(sparse))
	for _, p := range sparse {
		byTime[p.Timestamp.UnixNano()] = p.Value
	}

	filled := make([]float64, len(index))
	last := 0.0
	if len(sparse) > 0 {
		last = sparse[0].Value
	}
	for i, p := range index {
		if v, ok := byTime[p.Timestamp.UnixNano()]; ok {
			last = v
		}
		filled[i] = last
	}
	return filled
}

func timeLabels(timestamps []time.Time) []string {
	labels := make([]string, len(timestamps))
	for i, t := range timestamps {
		labels[i] = t.Format("2006-01-02 15:04")
	}
	return labels
}

func equityTimestamps(equity []series.EquityPoint) []time.Time {
	ts := make([]time.Time, len(equity))
	for i, p := range equity {
		ts[i] = p.Timestamp
	}
	return ts
}

func pointTimestamps(points series.Points) []time.Time {
	ts := make([]time.Time, len(points))
	for i, p := range points {
		ts[i] = p.Timestamp
	}
	return ts
}

func constantLine(value float64, n int) []float64 {
	line := make([]float64, n)
	for i := range line {
		line[i] = value
	}
	return line
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
