package main

import (
	"flag"
	"fmt"

	"github.com/leanquant/tearsheet/pkg/config"
)

// TearsheetFlags holds all command line flags for the tearsheet command
type TearsheetFlags struct {
	// Configuration
	ConfigFile    *string
	BacktestDir   *string
	BenchmarkPath *string

	// Metric parameters
	PeriodsPerYear *float64
	RiskFreeRate   *float64
	RollingWindow  *int

	// Output options
	Output      *string
	Format      *string
	ConsoleOnly *bool
	EnvFile     *string
	MetricsAddr *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewTearsheetFlags creates and registers all command line flags
func NewTearsheetFlags() *TearsheetFlags {
	return &TearsheetFlags{
		// Configuration
		ConfigFile:    flag.String("config", "", "Path to JSON configuration file"),
		BacktestDir:   flag.String("backtest", "", "Path to LEAN backtest directory containing JSON results"),
		BenchmarkPath: flag.String("benchmark", "", "Path to benchmark data file (zip or csv)"),

		// Metric parameters
		PeriodsPerYear: flag.Float64("periods-per-year", config.DefaultPeriodsPerYear, "Return periods per year (252 daily, 8760 hourly)"),
		RiskFreeRate:   flag.Float64("risk-free-rate", config.DefaultRiskFreeRate, "Annual risk-free rate (0.02 = 2%)"),
		RollingWindow:  flag.Int("rolling-window", config.DefaultRollingWindow, "Rolling Sharpe window in periods"),

		// Output options
		Output:      flag.String("output", config.DefaultOutput, "Output filename"),
		Format:      flag.String("format", "", "Output format (html, xlsx, json, csv); inferred from output extension when empty"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only (no files)"),
		EnvFile:     flag.String("env", ".env", "Path to environment file"),
		MetricsAddr: flag.String("metrics-addr", "", "Serve Prometheus metrics on this address during batch runs"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show help information"),
	}
}

// ApplyTo overrides config values with any flag set on the command line.
func (f *TearsheetFlags) ApplyTo(cfg *config.Config) {
	set := map[string]bool{}
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["backtest"] || cfg.BacktestDir == "" {
		cfg.BacktestDir = *f.BacktestDir
	}
	if set["benchmark"] {
		cfg.BenchmarkPath = *f.BenchmarkPath
	}
	if set["periods-per-year"] {
		cfg.PeriodsPerYear = *f.PeriodsPerYear
	}
	if set["risk-free-rate"] {
		cfg.RiskFreeRate = *f.RiskFreeRate
	}
	if set["rolling-window"] {
		cfg.RollingWindow = *f.RollingWindow
	}
	if set["output"] || cfg.Output == "" {
		cfg.Output = *f.Output
	}
	if set["format"] {
		cfg.Format = *f.Format
	}
	if set["console-only"] {
		cfg.ConsoleOnly = *f.ConsoleOnly
	}
	if set["metrics-addr"] {
		cfg.MetricsAddr = *f.MetricsAddr
	}

	// Positional form: tearsheet <backtest-dir>
	if cfg.BacktestDir == "" && flag.NArg() > 0 {
		cfg.BacktestDir = flag.Arg(0)
	}
}

// PrintUsageExamples prints usage examples for the tearsheet command
func PrintUsageExamples() {
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Generate an HTML tearsheet")
	fmt.Println("  tearsheet -backtest ./backtests/2024-01-01_12-00-00 -output tearsheet.html")
	fmt.Println()
	fmt.Println("  # Hourly data with a benchmark comparison")
	fmt.Println("  tearsheet -backtest ./backtests/run1 -periods-per-year 8760 \\")
	fmt.Println("      -benchmark ./data/btcusdt_trade.zip -output tearsheet.html")
	fmt.Println()
	fmt.Println("  # Excel workbook, format inferred from the extension")
	fmt.Println("  tearsheet -backtest ./backtests/run1 -output tearsheet.xlsx")
	fmt.Println()
}
