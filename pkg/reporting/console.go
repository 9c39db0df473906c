package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/leanquant/tearsheet/internal/tearsheet"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputSummary prints the tearsheet metric bundle to console
func (r *DefaultConsoleReporter) OutputSummary(sheet *tearsheet.Tearsheet) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("📊 STRATEGY PERFORMANCE")
	t.SetStyle(table.StyleRounded)

	hasBenchmark := sheet.Benchmark != nil
	if hasBenchmark {
		t.AppendHeader(table.Row{"Metric", "Strategy", "Benchmark"})
	} else {
		t.AppendHeader(table.Row{"Metric", "Strategy"})
	}

	for _, row := range buildMetricRows(sheet) {
		if hasBenchmark {
			t.AppendRow(table.Row{row.Name, row.Strategy, row.Benchmark})
		} else {
			t.AppendRow(table.Row{row.Name, row.Strategy})
		}
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, WidthMax: 18, Align: text.AlignLeft},
		{Number: 2, WidthMin: 12, Align: text.AlignRight},
		{Number: 3, WidthMin: 12, Align: text.AlignRight},
	})

	t.Render()

	if period := formatPeriod(sheet); period != "" {
		fmt.Printf("📅 Period: %s\n", period)
	}
	fmt.Printf("✅ Winning Trades: %d   ❌ Losing Trades: %d\n",
		sheet.Metrics.WinningTrades, sheet.Metrics.LosingTrades)
	fmt.Println()
}
