package data

import (
	"archive/zip"
	"encoding/csv"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/leanquant/tearsheet/internal/errors"
	"github.com/leanquant/tearsheet/internal/series"
)

const componentBenchmark = "benchmark"

// leanDateFormat is the timestamp layout of LEAN market data CSV files.
const leanDateFormat = "20060102 15:04"

// BenchmarkProvider loads benchmark price series from LEAN market data files:
// either a zip archive containing a CSV, or a plain CSV. Rows are
// `yyyyMMdd HH:mm, open, high, low, close, volume`; the close is used as the
// benchmark price.
type BenchmarkProvider struct{}

// NewBenchmarkProvider creates a benchmark data provider.
func NewBenchmarkProvider() *BenchmarkProvider {
	return &BenchmarkProvider{}
}

// LoadPrices loads the benchmark price series from path, keeping only points
// within [start, end] when those bounds are non-zero.
func (p *BenchmarkProvider) LoadPrices(path string, start, end time.Time) ([]series.EquityPoint, error) {
	var (
		prices []series.EquityPoint
		err    error
	)
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		prices, err = p.loadZip(path)
	} else {
		prices, err = p.loadCSV(path)
	}
	if err != nil {
		return nil, err
	}

	filtered := make([]series.EquityPoint, 0, len(prices))
	for _, pt := range prices {
		if !start.IsZero() && pt.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && pt.Timestamp.After(end) {
			continue
		}
		filtered = append(filtered, pt)
	}
	if len(filtered) == 0 {
		return nil, errors.NewMissingDataError(componentBenchmark,
			"benchmark file %s has no data points in the backtest date range", path)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})
	for i := 1; i < len(filtered); i++ {
		if filtered[i].Timestamp.Equal(filtered[i-1].Timestamp) {
			return nil, errors.NewMalformedDataError(componentBenchmark,
				"duplicate benchmark timestamp %s", filtered[i].Timestamp.Format(time.RFC3339))
		}
	}

	return filtered, nil
}

func (p *BenchmarkProvider) loadZip(path string) ([]series.EquityPoint, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryMalformedData, componentBenchmark, "opening benchmark zip")
	}
	defer archive.Close()

	for _, member := range archive.File {
		if !strings.HasSuffix(strings.ToLower(member.Name), ".csv") {
			continue
		}
		reader, err := member.Open()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorCategoryMalformedData, componentBenchmark, "opening zip member")
		}
		defer reader.Close()
		return p.parseCSV(reader)
	}

	return nil, errors.NewMissingDataError(componentBenchmark, "no CSV member found in %s", path)
}

func (p *BenchmarkProvider) loadCSV(path string) ([]series.EquityPoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryMissingData, componentBenchmark, "opening benchmark file")
	}
	defer file.Close()
	return p.parseCSV(file)
}

func (p *BenchmarkProvider) parseCSV(r io.Reader) ([]series.EquityPoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var prices []series.EquityPoint
	lineNum := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, errors.ErrorCategoryMalformedData, componentBenchmark, "reading benchmark CSV")
		}
		lineNum++

		if len(record) < 5 {
			log.Printf("⚠️ Insufficient columns at line %d (expected 5, got %d), skipping", lineNum, len(record))
			continue
		}

		timestamp, err := time.Parse(leanDateFormat, strings.TrimSpace(record[0]))
		if err != nil {
			log.Printf("⚠️ Invalid timestamp '%s' at line %d, skipping: %v", record[0], lineNum, err)
			continue
		}

		close, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if err != nil {
			log.Printf("⚠️ Invalid close price '%s' at line %d, skipping: %v", record[4], lineNum, err)
			continue
		}
		if close <= 0 {
			log.Printf("⚠️ Non-positive close price at line %d, skipping", lineNum)
			continue
		}

		prices = append(prices, series.EquityPoint{Timestamp: timestamp.UTC(), Value: close})
	}

	if len(prices) == 0 {
		return nil, errors.NewMissingDataError(componentBenchmark, "benchmark CSV has no valid rows")
	}

	return prices, nil
}
