package reporting

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/leanquant/tearsheet/internal/metrics"
	"github.com/leanquant/tearsheet/internal/series"
	"github.com/leanquant/tearsheet/internal/tearsheet"
	"github.com/leanquant/tearsheet/pkg/lean"
)

// sampleTearsheet builds a small but fully populated bundle for renderer
// tests, with or without a benchmark side.
func sampleTearsheet(withBenchmark bool) *tearsheet.Tearsheet {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	values := []float64{100000, 100500, 99800, 101200, 100900, 102300, 101800, 103100}

	equity := make([]series.EquityPoint, len(values))
	for i, v := range values {
		equity[i] = series.EquityPoint{Timestamp: base.AddDate(0, 0, i), Value: v}
	}
	returns, _ := series.FromEquity(equity)

	engine := metrics.NewEngine(252, 0)
	bundle, _ := engine.Compute(equity, returns, []series.Trade{
		{EntryTime: base, ExitTime: base.AddDate(0, 0, 1), ProfitLoss: 500, Fees: 2},
		{EntryTime: base.AddDate(0, 0, 2), ExitTime: base.AddDate(0, 0, 3), ProfitLoss: -300, Fees: 2},
	})
	rolling, _ := engine.RollingSharpe(returns, 3)

	sheet := &tearsheet.Tearsheet{
		Config: lean.AlgorithmConfiguration{
			StartDate: "2024-01-01 00:00:00",
			EndDate:   "2024-01-08 00:00:00",
		},
		Metrics:       bundle,
		Equity:        equity,
		Returns:       returns,
		Drawdown:      metrics.DrawdownSeries(equity),
		RollingSharpe: rolling,
		Trades: []series.Trade{
			{EntryTime: base, ExitTime: base.AddDate(0, 0, 1), ProfitLoss: 500, Fees: 2},
			{EntryTime: base.AddDate(0, 0, 2), ExitTime: base.AddDate(0, 0, 3), ProfitLoss: -300, Fees: 2},
		},
	}

	if withBenchmark {
		benchEquity := make([]series.EquityPoint, len(equity))
		for i, p := range equity {
			benchEquity[i] = series.EquityPoint{Timestamp: p.Timestamp, Value: 100 * (1 + 0.001*float64(i))}
		}
		benchReturns, _ := series.FromEquity(benchEquity)
		benchBundle, _ := engine.Compute(benchEquity, benchReturns, nil)
		benchRolling, _ := engine.RollingSharpe(benchReturns, 3)
		sheet.Benchmark = &tearsheet.Benchmark{
			Metrics:       benchBundle,
			Returns:       benchReturns,
			Equity:        benchEquity,
			Drawdown:      metrics.DrawdownSeries(benchEquity),
			RollingSharpe: benchRolling,
		}
	}

	return sheet
}

// TestDetectFormat_Extensions tests format inference from the output filename
func TestDetectFormat_Extensions(t *testing.T) {
	assert.Equal(t, FormatHTML, DetectFormat("out/tearsheet.html"))
	assert.Equal(t, FormatHTML, DetectFormat("tearsheet.HTML"))
	assert.Equal(t, FormatExcel, DetectFormat("tearsheet.xlsx"))
	assert.Equal(t, FormatJSON, DetectFormat("metrics.json"))
	assert.Equal(t, FormatCSV, DetectFormat("trades.csv"))
	assert.Equal(t, FormatHTML, DetectFormat("no-extension")) // default
}

// TestGetDefaultOutputDir tests output directory naming
func TestGetDefaultOutputDir(t *testing.T) {
	paths := NewDefaultPathManager()

	assert.Equal(t, filepath.Join("tearsheets", "2024-01-01_12-00-00"),
		paths.GetDefaultOutputDir("backtests/2024-01-01_12-00-00"))
	assert.Equal(t, filepath.Join("tearsheets", "run1"),
		paths.GetDefaultOutputDir("./run1/"))
	assert.Equal(t, filepath.Join("tearsheets", "backtest"),
		paths.GetDefaultOutputDir(""))
}

// TestFormatMetrics_JSON tests the JSON export shape
func TestFormatMetrics_JSON(t *testing.T) {
	formatter := NewDefaultJSONFormatter()

	data, err := formatter.FormatMetrics(sampleTearsheet(true))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "start_date")
	assert.Contains(t, decoded, "strategy")
	assert.Contains(t, decoded, "benchmark")

	var strategy map[string]interface{}
	require.NoError(t, json.Unmarshal(decoded["strategy"], &strategy))
	assert.Contains(t, strategy, "total_return")
	assert.Contains(t, strategy, "sharpe_ratio")
	assert.Contains(t, strategy, "max_drawdown")
	assert.Contains(t, strategy, "win_rate")
}

// TestFormatMetrics_NoBenchmark tests that the benchmark key is omitted
func TestFormatMetrics_NoBenchmark(t *testing.T) {
	formatter := NewDefaultJSONFormatter()

	data, err := formatter.FormatMetrics(sampleTearsheet(false))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "benchmark")
}

// TestWriteJSON_CreatesFile tests JSON file output including directories
func TestWriteJSON_CreatesFile(t *testing.T) {
	formatter := NewDefaultJSONFormatter()
	path := filepath.Join(t.TempDir(), "nested", "metrics.json")

	require.NoError(t, formatter.WriteJSON(sampleTearsheet(false), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

// TestWriteTradesCSV_RoundTrip tests the trade log export
func TestWriteTradesCSV_RoundTrip(t *testing.T) {
	reporter := NewDefaultCSVReporter()
	path := filepath.Join(t.TempDir(), "trades.csv")

	require.NoError(t, reporter.WriteTradesCSV(sampleTearsheet(false), path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3) // header plus two trades
	assert.Equal(t, []string{"entry_time", "exit_time", "profit_loss", "fees"}, records[0])
	assert.Equal(t, "500", records[1][2])
	assert.Equal(t, "-300", records[2][2])
}

// TestWriteHTML_SelfContained tests that the rendered page embeds its charts
func TestWriteHTML_SelfContained(t *testing.T) {
	reporter := NewDefaultHTMLReporter()
	path := filepath.Join(t.TempDir(), "tearsheet.html")

	require.NoError(t, reporter.WriteHTML(sampleTearsheet(true), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "Strategy Tearsheet")
	assert.Contains(t, html, "2024-01-01 to 2024-01-08")
	assert.Contains(t, html, "Sharpe Ratio")
	assert.Contains(t, html, "<th>Benchmark</th>")
	// three embedded chart images
	assert.Equal(t, 3, strings.Count(html, "data:image/png;base64,"))
}

// TestWriteHTML_NoBenchmark tests the single-column variant
func TestWriteHTML_NoBenchmark(t *testing.T) {
	reporter := NewDefaultHTMLReporter()
	path := filepath.Join(t.TempDir(), "tearsheet.html")

	require.NoError(t, reporter.WriteHTML(sampleTearsheet(false), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "<th>Benchmark</th>")
}

// TestWriteXLSX_Workbook tests the Excel workbook structure
func TestWriteXLSX_Workbook(t *testing.T) {
	reporter := NewDefaultExcelReporter()
	path := filepath.Join(t.TempDir(), "tearsheet.xlsx")

	require.NoError(t, reporter.WriteXLSX(sampleTearsheet(true), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Metrics")
	assert.Contains(t, sheets, "Equity Curve")
	assert.Contains(t, sheets, "Trades")

	name, err := f.GetCellValue("Metrics", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Metric", name)
}

// TestBuildMetricRows_Columns tests the shared metric table rows
func TestBuildMetricRows_Columns(t *testing.T) {
	rows := buildMetricRows(sampleTearsheet(true))

	require.Len(t, rows, 9)
	assert.Equal(t, "Total Return", rows[0].Name)
	assert.NotEmpty(t, rows[0].Strategy)
	assert.NotEmpty(t, rows[0].Benchmark)

	noBench := buildMetricRows(sampleTearsheet(false))
	assert.Empty(t, noBench[0].Benchmark)
}

// TestReportingManager_FormatDispatch tests end-to-end dispatch by extension
func TestReportingManager_FormatDispatch(t *testing.T) {
	dir := t.TempDir()
	sheet := sampleTearsheet(false)

	for _, name := range []string{"out.json", "trades.csv", "report.html", "book.xlsx"} {
		path := filepath.Join(dir, name)
		manager := NewReportingManager(ReportingConfig{OutputPath: path})
		require.NoError(t, manager.Report(sheet), name)

		info, err := os.Stat(path)
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}
