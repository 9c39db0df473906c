package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leanquant/tearsheet/internal/metrics"
	"github.com/leanquant/tearsheet/internal/tearsheet"
)

// DefaultJSONFormatter implements JSON output functionality
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// jsonReport is the serialized shape of a tearsheet metric export.
type jsonReport struct {
	StartDate string          `json:"start_date,omitempty"`
	EndDate   string          `json:"end_date,omitempty"`
	Strategy  *metrics.Bundle `json:"strategy"`
	Benchmark *metrics.Bundle `json:"benchmark,omitempty"`
}

// FormatMetrics formats the tearsheet metric bundles as indented JSON bytes
func (f *DefaultJSONFormatter) FormatMetrics(sheet *tearsheet.Tearsheet) ([]byte, error) {
	report := jsonReport{
		StartDate: sheet.Config.StartDate,
		EndDate:   sheet.Config.EndDate,
		Strategy:  sheet.Metrics,
	}
	if sheet.Benchmark != nil {
		report.Benchmark = sheet.Benchmark.Metrics
	}
	return json.MarshalIndent(report, "", "  ")
}

// PrintMetrics prints the metric bundles as JSON to console
func (f *DefaultJSONFormatter) PrintMetrics(sheet *tearsheet.Tearsheet) {
	data, _ := f.FormatMetrics(sheet)
	fmt.Println(string(data))
}

// WriteJSON writes the metric bundles to a JSON file
func (f *DefaultJSONFormatter) WriteJSON(sheet *tearsheet.Tearsheet, path string) error {
	data, err := f.FormatMetrics(sheet)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}
