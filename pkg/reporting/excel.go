package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/leanquant/tearsheet/internal/metrics"
	"github.com/leanquant/tearsheet/internal/tearsheet"
)

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle  int
	PercentStyle int
	NumberStyle  int
	BaseStyle    int
	DateStyle    int
}

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteXLSX writes the full tearsheet as an Excel workbook with Metrics,
// Equity Curve and Trades sheets.
func (r *DefaultExcelReporter) WriteXLSX(sheet *tearsheet.Tearsheet, path string) error {
	// Ensure directory exists before creating file
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const metricsSheet = "Metrics"
	const equitySheet = "Equity Curve"
	const tradesSheet = "Trades"

	fx.SetSheetName(fx.GetSheetName(0), metricsSheet)
	fx.NewSheet(equitySheet)
	fx.NewSheet(tradesSheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeMetricsSheet(fx, metricsSheet, sheet, styles); err != nil {
		return err
	}
	if err := r.writeEquitySheet(fx, equitySheet, sheet, styles); err != nil {
		return err
	}
	if err := r.writeTradesSheet(fx, tradesSheet, sheet, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	// Header style - dark background with white text
	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Percentage style (right aligned, % format)
	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 10, // 0.00%
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Number style (right aligned, 2 decimals)
	styles.NumberStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2, // 0.00
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Base style (light borders)
	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Date style
	styles.DateStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 22, // m/d/yy h:mm
		Alignment: &excelize.Alignment{
			Horizontal: "left",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	return styles, err
}

func (r *DefaultExcelReporter) writeMetricsSheet(fx *excelize.File, name string, sheet *tearsheet.Tearsheet, styles ExcelStyles) error {
	headers := []string{"Metric", "Strategy"}
	if sheet.Benchmark != nil {
		headers = append(headers, "Benchmark")
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		fx.SetCellValue(name, cell, header)
		fx.SetCellStyle(name, cell, cell, styles.HeaderStyle)
	}

	type row struct {
		name    string
		pick    func(*metrics.Bundle) float64
		percent bool
	}
	rows := []row{
		{"Total Return", func(b *metrics.Bundle) float64 { return b.TotalReturn }, true},
		{"Annual Return", func(b *metrics.Bundle) float64 { return b.AnnualizedReturn }, true},
		{"Volatility", func(b *metrics.Bundle) float64 { return b.AnnualizedVolatility }, true},
		{"Sharpe Ratio", func(b *metrics.Bundle) float64 { return b.SharpeRatio }, false},
		{"Sortino Ratio", func(b *metrics.Bundle) float64 { return b.SortinoRatio }, false},
		{"Calmar Ratio", func(b *metrics.Bundle) float64 { return b.CalmarRatio }, false},
		{"Max Drawdown", func(b *metrics.Bundle) float64 { return b.MaxDrawdown }, true},
		{"Win Rate", func(b *metrics.Bundle) float64 { return b.WinRate }, true},
		{"Total Trades", func(b *metrics.Bundle) float64 { return float64(b.TotalTrades) }, false},
		{"Winning Trades", func(b *metrics.Bundle) float64 { return float64(b.WinningTrades) }, false},
		{"Losing Trades", func(b *metrics.Bundle) float64 { return float64(b.LosingTrades) }, false},
	}

	for i, rw := range rows {
		nameCell, _ := excelize.CoordinatesToCellName(1, i+2)
		fx.SetCellValue(name, nameCell, rw.name)
		fx.SetCellStyle(name, nameCell, nameCell, styles.BaseStyle)

		valueStyle := styles.NumberStyle
		if rw.percent {
			valueStyle = styles.PercentStyle
		}

		strategyCell, _ := excelize.CoordinatesToCellName(2, i+2)
		fx.SetCellValue(name, strategyCell, rw.pick(sheet.Metrics))
		fx.SetCellStyle(name, strategyCell, strategyCell, valueStyle)

		if sheet.Benchmark != nil {
			benchCell, _ := excelize.CoordinatesToCellName(3, i+2)
			fx.SetCellValue(name, benchCell, rw.pick(sheet.Benchmark.Metrics))
			fx.SetCellStyle(name, benchCell, benchCell, valueStyle)
		}
	}

	fx.SetColWidth(name, "A", "A", 18)
	fx.SetColWidth(name, "B", "C", 14)
	return nil
}

func (r *DefaultExcelReporter) writeEquitySheet(fx *excelize.File, name string, sheet *tearsheet.Tearsheet, styles ExcelStyles) error {
	headers := []string{"Timestamp", "Equity", "Drawdown", "Rolling Sharpe"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		fx.SetCellValue(name, cell, header)
		fx.SetCellStyle(name, cell, cell, styles.HeaderStyle)
	}

	rollingByTime := make(map[int64]float64, len(sheet.RollingSharpe))
	for _, p := range sheet.RollingSharpe {
		rollingByTime[p.Timestamp.UnixNano()] = p.Value
	}

	for i, p := range sheet.Equity {
		rowNum := i + 2

		tsCell, _ := excelize.CoordinatesToCellName(1, rowNum)
		fx.SetCellValue(name, tsCell, p.Timestamp)
		fx.SetCellStyle(name, tsCell, tsCell, styles.DateStyle)

		equityCell, _ := excelize.CoordinatesToCellName(2, rowNum)
		fx.SetCellValue(name, equityCell, p.Value)
		fx.SetCellStyle(name, equityCell, equityCell, styles.NumberStyle)

		ddCell, _ := excelize.CoordinatesToCellName(3, rowNum)
		fx.SetCellValue(name, ddCell, sheet.Drawdown[i].Value)
		fx.SetCellStyle(name, ddCell, ddCell, styles.PercentStyle)

		if v, ok := rollingByTime[p.Timestamp.UnixNano()]; ok {
			rsCell, _ := excelize.CoordinatesToCellName(4, rowNum)
			fx.SetCellValue(name, rsCell, v)
			fx.SetCellStyle(name, rsCell, rsCell, styles.NumberStyle)
		}
	}

	fx.SetColWidth(name, "A", "A", 20)
	fx.SetColWidth(name, "B", "D", 14)
	return nil
}

func (r *DefaultExcelReporter) writeTradesSheet(fx *excelize.File, name string, sheet *tearsheet.Tearsheet, styles ExcelStyles) error {
	headers := []string{"Entry Time", "Exit Time", "Profit/Loss", "Fees"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		fx.SetCellValue(name, cell, header)
		fx.SetCellStyle(name, cell, cell, styles.HeaderStyle)
	}

	for i, t := range sheet.Trades {
		rowNum := i + 2

		entryCell, _ := excelize.CoordinatesToCellName(1, rowNum)
		fx.SetCellValue(name, entryCell, t.EntryTime)
		fx.SetCellStyle(name, entryCell, entryCell, styles.DateStyle)

		exitCell, _ := excelize.CoordinatesToCellName(2, rowNum)
		fx.SetCellValue(name, exitCell, t.ExitTime)
		fx.SetCellStyle(name, exitCell, exitCell, styles.DateStyle)

		pnlCell, _ := excelize.CoordinatesToCellName(3, rowNum)
		fx.SetCellValue(name, pnlCell, t.ProfitLoss)
		fx.SetCellStyle(name, pnlCell, pnlCell, styles.NumberStyle)

		feesCell, _ := excelize.CoordinatesToCellName(4, rowNum)
		fx.SetCellValue(name, feesCell, t.Fees)
		fx.SetCellStyle(name, feesCell, feesCell, styles.NumberStyle)
	}

	fx.SetColWidth(name, "A", "B", 20)
	fx.SetColWidth(name, "C", "D", 14)
	return nil
}
