package reporting

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/leanquant/tearsheet/internal/metrics"
	"github.com/leanquant/tearsheet/internal/tearsheet"
)

// DefaultHTMLReporter renders a self-contained HTML tearsheet with the metric
// tables and the equity / drawdown / rolling Sharpe charts embedded as PNGs.
type DefaultHTMLReporter struct{}

// NewDefaultHTMLReporter creates a new HTML reporter
func NewDefaultHTMLReporter() *DefaultHTMLReporter {
	return &DefaultHTMLReporter{}
}

type metricRow struct {
	Name      string
	Strategy  string
	Benchmark string
}

type htmlPage struct {
	Title         string
	Period        string
	HasBenchmark  bool
	MetricRows    []metricRow
	EquityChart   template.URL
	DrawdownChart template.URL
	SharpeChart   template.URL
	TradeCount    int
}

var tearsheetTemplate = template.Must(template.New("tearsheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Segoe UI", Arial, sans-serif; margin: 24px; color: #222; }
h1 { font-size: 22px; }
h2 { font-size: 16px; margin-top: 32px; }
table { border-collapse: collapse; margin-top: 8px; }
th, td { border: 1px solid #cfd8dc; padding: 6px 14px; text-align: left; }
th { background: #2f4f4f; color: #fff; }
tr:nth-child(even) { background: #f4f7f8; }
img { max-width: 100%; margin-top: 8px; }
.period { color: #607d8b; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="period">{{.Period}}</p>

<h2>Performance Metrics</h2>
<table>
<tr><th>Metric</th><th>Strategy</th>{{if .HasBenchmark}}<th>Benchmark</th>{{end}}</tr>
{{range .MetricRows}}<tr><td>{{.Name}}</td><td>{{.Strategy}}</td>{{if $.HasBenchmark}}<td>{{.Benchmark}}</td>{{end}}</tr>
{{end}}</table>

<h2>Cumulative Returns Comparison</h2>
<img src="{{.EquityChart}}" alt="Cumulative returns">

<h2>Drawdown Comparison</h2>
<img src="{{.DrawdownChart}}" alt="Drawdown">

<h2>Rolling Sharpe Ratio</h2>
<img src="{{.SharpeChart}}" alt="Rolling Sharpe">

<p class="period">{{.TradeCount}} closed trades</p>
</body>
</html>
`))

// WriteHTML renders the tearsheet to a single HTML file at path.
func (r *DefaultHTMLReporter) WriteHTML(sheet *tearsheet.Tearsheet, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	equityPNG, err := renderEquityChart(sheet)
	if err != nil {
		return fmt.Errorf("rendering equity chart: %w", err)
	}
	drawdownPNG, err := renderDrawdownChart(sheet)
	if err != nil {
		return fmt.Errorf("rendering drawdown chart: %w", err)
	}
	sharpePNG, err := renderRollingSharpeChart(sheet)
	if err != nil {
		return fmt.Errorf("rendering rolling Sharpe chart: %w", err)
	}

	page := htmlPage{
		Title:         "Strategy Tearsheet",
		Period:        formatPeriod(sheet),
		HasBenchmark:  sheet.Benchmark != nil,
		MetricRows:    buildMetricRows(sheet),
		EquityChart:   pngDataURL(equityPNG),
		DrawdownChart: pngDataURL(drawdownPNG),
		SharpeChart:   pngDataURL(sharpePNG),
		TradeCount:    len(sheet.Trades),
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return tearsheetTemplate.Execute(file, page)
}

func buildMetricRows(sheet *tearsheet.Tearsheet) []metricRow {
	var bench *metrics.Bundle
	if sheet.Benchmark != nil {
		bench = sheet.Benchmark.Metrics
	}

	format := func(name string, pick func(*metrics.Bundle) string) metricRow {
		row := metricRow{Name: name, Strategy: pick(sheet.Metrics)}
		if bench != nil {
			row.Benchmark = pick(bench)
		}
		return row
	}

	return []metricRow{
		format("Total Return", func(b *metrics.Bundle) string { return formatPercent(b.TotalReturn) }),
		format("Annual Return", func(b *metrics.Bundle) string { return formatPercent(b.AnnualizedReturn) }),
		format("Volatility", func(b *metrics.Bundle) string { return formatPercent(b.AnnualizedVolatility) }),
		format("Sharpe Ratio", func(b *metrics.Bundle) string { return formatRatio(b.SharpeRatio) }),
		format("Sortino Ratio", func(b *metrics.Bundle) string { return formatRatio(b.SortinoRatio) }),
		format("Calmar Ratio", func(b *metrics.Bundle) string { return formatRatio(b.CalmarRatio) }),
		format("Max Drawdown", func(b *metrics.Bundle) string { return formatPercent(b.MaxDrawdown) }),
		format("Win Rate", func(b *metrics.Bundle) string { return formatPercent(b.WinRate) }),
		format("Total Trades", func(b *metrics.Bundle) string { return fmt.Sprintf("%d", b.TotalTrades) }),
	}
}

func formatPeriod(sheet *tearsheet.Tearsheet) string {
	start := truncateDate(sheet.Config.StartDate)
	end := truncateDate(sheet.Config.EndDate)
	if start == "" || end == "" {
		return ""
	}
	return fmt.Sprintf("%s to %s", start, end)
}

func truncateDate(value string) string {
	if len(value) > 10 {
		return value[:10]
	}
	return value
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func formatRatio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func pngDataURL(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
