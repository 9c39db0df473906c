package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default values
const (
	DefaultPeriodsPerYear = 252.0 // daily data
	DefaultRiskFreeRate   = 0.0
	DefaultRollingWindow  = 30
	DefaultOutput         = "tearsheet.html"
)

// Config holds all settings for one tearsheet generation run. Values come
// from an optional JSON config file with command line flags taking
// precedence.
type Config struct {
	BacktestDir   string  `json:"backtest_dir"`
	BenchmarkPath string  `json:"benchmark_path"`
	Output        string  `json:"output"`
	Format        string  `json:"format"`

	PeriodsPerYear float64 `json:"periods_per_year"`
	RiskFreeRate   float64 `json:"risk_free_rate"`
	RollingWindow  int     `json:"rolling_window"`

	ConsoleOnly bool   `json:"console_only"`
	MetricsAddr string `json:"metrics_addr"`
}

// Default returns a config populated with default values.
func Default() *Config {
	return &Config{
		Output:         DefaultOutput,
		PeriodsPerYear: DefaultPeriodsPerYear,
		RiskFreeRate:   DefaultRiskFreeRate,
		RollingWindow:  DefaultRollingWindow,
	}
}

// Load reads a JSON config file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BacktestDir == "" {
		return fmt.Errorf("backtest directory is required")
	}
	if info, err := os.Stat(c.BacktestDir); err != nil {
		return fmt.Errorf("backtest directory not found: %s", c.BacktestDir)
	} else if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", c.BacktestDir)
	}
	if c.BenchmarkPath != "" {
		if _, err := os.Stat(c.BenchmarkPath); err != nil {
			return fmt.Errorf("benchmark file not found: %s", c.BenchmarkPath)
		}
	}
	if c.PeriodsPerYear <= 0 {
		return fmt.Errorf("periods per year must be positive, got %v", c.PeriodsPerYear)
	}
	if c.RollingWindow < 2 {
		return fmt.Errorf("rolling window must be at least 2, got %d", c.RollingWindow)
	}
	switch c.Format {
	case "", "html", "xlsx", "json", "csv":
	default:
		return fmt.Errorf("unsupported format %q (use html, xlsx, json, csv)", c.Format)
	}
	return nil
}
