package reporting

import (
	"github.com/leanquant/tearsheet/internal/tearsheet"
)

// Package reporting renders computed tearsheet bundles into user-facing
// output: console tables, self-contained HTML documents, Excel workbooks,
// JSON and CSV exports.

// Format identifies a file output format.
type Format string

const (
	FormatHTML  Format = "html"
	FormatExcel Format = "xlsx"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	OutputSummary(sheet *tearsheet.Tearsheet)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteHTML(sheet *tearsheet.Tearsheet, path string) error
	WriteXLSX(sheet *tearsheet.Tearsheet, path string) error
	WriteJSON(sheet *tearsheet.Tearsheet, path string) error
	WriteTradesCSV(sheet *tearsheet.Tearsheet, path string) error
}

// PathManager defines interface for output path management
type PathManager interface {
	GetDefaultOutputDir(backtestDir string) string
	EnsureDirectoryExists(path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
	PathManager
}

// ReportingConfig holds configuration for one report run. It is passed
// explicitly into the manager call; renderers keep no process-wide state.
type ReportingConfig struct {
	EnableConsole bool
	OutputPath    string
	Format        Format
}
