package reporting

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns the default output directory for a backtest,
// named after the backtest directory.
func (p *DefaultPathManager) GetDefaultOutputDir(backtestDir string) string {
	base := filepath.Base(filepath.Clean(backtestDir))
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "backtest"
	}
	return filepath.Join("tearsheets", base)
}

// EnsureDirectoryExists creates directory if it doesn't exist
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// DetectFormat infers the output format from the output filename extension,
// defaulting to HTML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatExcel
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	default:
		return FormatHTML
	}
}
