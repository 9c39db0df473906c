package reporting

import (
	"fmt"

	"github.com/leanquant/tearsheet/internal/tearsheet"
)

// DefaultReporter implements the complete Reporter interface
type DefaultReporter struct {
	console *DefaultConsoleReporter
	html    *DefaultHTMLReporter
	excel   *DefaultExcelReporter
	json    *DefaultJSONFormatter
	csv     *DefaultCSVReporter
	paths   *DefaultPathManager
}

// NewDefaultReporter creates a new default reporter with all functionality
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(),
		html:    NewDefaultHTMLReporter(),
		excel:   NewDefaultExcelReporter(),
		json:    NewDefaultJSONFormatter(),
		csv:     NewDefaultCSVReporter(),
		paths:   NewDefaultPathManager(),
	}
}

// Console output methods
func (r *DefaultReporter) OutputSummary(sheet *tearsheet.Tearsheet) {
	r.console.OutputSummary(sheet)
}

// File output methods
func (r *DefaultReporter) WriteHTML(sheet *tearsheet.Tearsheet, path string) error {
	return r.html.WriteHTML(sheet, path)
}

func (r *DefaultReporter) WriteXLSX(sheet *tearsheet.Tearsheet, path string) error {
	return r.excel.WriteXLSX(sheet, path)
}

func (r *DefaultReporter) WriteJSON(sheet *tearsheet.Tearsheet, path string) error {
	return r.json.WriteJSON(sheet, path)
}

func (r *DefaultReporter) WriteTradesCSV(sheet *tearsheet.Tearsheet, path string) error {
	return r.csv.WriteTradesCSV(sheet, path)
}

// Path management methods
func (r *DefaultReporter) GetDefaultOutputDir(backtestDir string) string {
	return r.paths.GetDefaultOutputDir(backtestDir)
}

func (r *DefaultReporter) EnsureDirectoryExists(path string) error {
	return r.paths.EnsureDirectoryExists(path)
}

// ReportingManager provides a high-level interface for all reporting needs
type ReportingManager struct {
	reporter *DefaultReporter
	config   ReportingConfig
}

// NewReportingManager creates a new reporting manager with configuration
func NewReportingManager(config ReportingConfig) *ReportingManager {
	return &ReportingManager{
		reporter: NewDefaultReporter(),
		config:   config,
	}
}

// Report renders the tearsheet according to configuration: console summary
// plus the configured file format at the configured path.
func (m *ReportingManager) Report(sheet *tearsheet.Tearsheet) error {
	if m.config.EnableConsole {
		m.reporter.OutputSummary(sheet)
	}

	if m.config.OutputPath == "" {
		return nil
	}

	if err := m.reporter.EnsureDirectoryExists(m.config.OutputPath); err != nil {
		return err
	}

	format := m.config.Format
	if format == "" {
		format = DetectFormat(m.config.OutputPath)
	}

	switch format {
	case FormatHTML:
		return m.reporter.WriteHTML(sheet, m.config.OutputPath)
	case FormatExcel:
		return m.reporter.WriteXLSX(sheet, m.config.OutputPath)
	case FormatJSON:
		return m.reporter.WriteJSON(sheet, m.config.OutputPath)
	case FormatCSV:
		return m.reporter.WriteTradesCSV(sheet, m.config.OutputPath)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
