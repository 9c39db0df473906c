package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/leanquant/tearsheet/internal/monitoring"
	"github.com/leanquant/tearsheet/internal/tearsheet"
	"github.com/leanquant/tearsheet/pkg/config"
	"github.com/leanquant/tearsheet/pkg/reporting"
)

const (
	AppName    = "Tearsheet"
	AppVersion = "1.0.0"
)

func main() {
	// Create and parse command line flags
	flags := NewTearsheetFlags()
	flag.Parse()

	// Version and help
	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}
	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	// Header
	printHeader()

	// Load environment
	loadEnvironment(*flags.EnvFile)

	// Load configuration with flag overrides
	cfg, err := config.Load(*flags.ConfigFile)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}
	flags.ApplyTo(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	// Optional Prometheus endpoint for long batch runs
	if cfg.MetricsAddr != "" {
		startMetricsServer(cfg.MetricsAddr)
	}

	// Generate the tearsheet
	log.Printf("📂 Loading backtest from %s...", cfg.BacktestDir)
	generator := tearsheet.New(cfg.BacktestDir, cfg.BenchmarkPath, tearsheet.Options{
		PeriodsPerYear: cfg.PeriodsPerYear,
		RiskFreeRate:   cfg.RiskFreeRate,
		RollingWindow:  cfg.RollingWindow,
	})

	sheet, err := generator.Generate()
	if err != nil {
		log.Fatalf("❌ Tearsheet generation failed: %v", err)
	}

	// Render output
	reportCfg := reporting.ReportingConfig{
		EnableConsole: true,
		Format:        reporting.Format(cfg.Format),
	}
	if !cfg.ConsoleOnly {
		reportCfg.OutputPath = cfg.Output
	}

	manager := reporting.NewReportingManager(reportCfg)
	if err := manager.Report(sheet); err != nil {
		log.Fatalf("❌ Report output failed: %v", err)
	}

	if !cfg.ConsoleOnly {
		abs, _ := filepath.Abs(cfg.Output)
		fmt.Printf("✅ Tearsheet generated: %s\n", abs)
	}
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - Backtest Tearsheet Generation\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s [OPTIONS] [backtest-dir]\n\n", filepath.Base(flag.CommandLine.Name()))

	PrintUsageExamples()

	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

func startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	go func() {
		log.Printf("📡 Serving Prometheus metrics on %s/metrics", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("⚠️  Metrics server stopped: %v", err)
		}
	}()
}
