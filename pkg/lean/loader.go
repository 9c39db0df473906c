package lean

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/leanquant/tearsheet/internal/errors"
	"github.com/leanquant/tearsheet/internal/series"
)

const componentLoader = "lean"

const (
	equityChartName  = "Strategy Equity"
	equitySeriesName = "Equity"
)

// tradeTimeLayouts covers the timestamp formats LEAN emits for closed trades.
var tradeTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Load reads the backtest result JSON from a LEAN backtest directory. LEAN
// names the result file after the backtest id, so the loader picks the first
// numeric-named JSON file in the directory.
func Load(dir string) (*Result, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "[0-9]*.json"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryMissingData, componentLoader, "scanning backtest directory")
	}
	if len(matches) == 0 {
		return nil, errors.NewMissingDataError(componentLoader,
			"no backtest result JSON found in %s", dir)
	}
	sort.Strings(matches)

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryMissingData, componentLoader, "reading backtest result")
	}

	return Parse(data)
}

// Parse converts raw LEAN result JSON into a validated Result. The equity
// curve is sorted by timestamp when out of order; duplicate timestamps are a
// hard error since there is no unambiguous way to resolve them.
func Parse(data []byte) (*Result, error) {
	var file resultFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryMalformedData, componentLoader, "parsing backtest result JSON")
	}

	equity, err := extractEquity(&file)
	if err != nil {
		return nil, err
	}

	trades, err := extractTrades(&file)
	if err != nil {
		return nil, err
	}

	return &Result{
		Equity: equity,
		Trades: trades,
		Config: file.Config,
	}, nil
}

func extractEquity(file *resultFile) ([]series.EquityPoint, error) {
	chart, ok := file.Charts[equityChartName]
	if !ok {
		return nil, errors.NewMissingDataError(componentLoader,
			"result has no %q chart", equityChartName)
	}
	equitySeries, ok := chart.Series[equitySeriesName]
	if !ok {
		return nil, errors.NewMissingDataError(componentLoader,
			"%q chart has no %q series", equityChartName, equitySeriesName)
	}
	if len(equitySeries.Values) == 0 {
		return nil, errors.NewMissingDataError(componentLoader, "equity series is empty")
	}

	equity := make([]series.EquityPoint, 0, len(equitySeries.Values))
	for i, row := range equitySeries.Values {
		if len(row) < 2 {
			return nil, errors.NewMalformedDataError(componentLoader,
				"equity row %d has %d columns, expected at least 2", i, len(row))
		}
		unix := row[0]
		if math.IsNaN(unix) || unix != math.Trunc(unix) {
			return nil, errors.NewMalformedDataError(componentLoader,
				"equity row %d has unparsable timestamp %v", i, unix)
		}
		// candlestick rows carry [ts, open, high, low, close]; the close is
		// the portfolio value at the end of the period
		value := row[len(row)-1]
		if math.IsNaN(value) || value <= 0 {
			return nil, errors.NewMalformedDataError(componentLoader,
				"equity row %d has non-positive portfolio value %v", i, value)
		}
		equity = append(equity, series.EquityPoint{
			Timestamp: time.Unix(int64(unix), 0).UTC(),
			Value:     value,
		})
	}

	sort.SliceStable(equity, func(i, j int) bool {
		return equity[i].Timestamp.Before(equity[j].Timestamp)
	})
	for i := 1; i < len(equity); i++ {
		if equity[i].Timestamp.Equal(equity[i-1].Timestamp) {
			return nil, errors.NewMalformedDataError(componentLoader,
				"duplicate equity timestamp %s", equity[i].Timestamp.Format(time.RFC3339))
		}
	}

	return equity, nil
}

func extractTrades(file *resultFile) ([]series.Trade, error) {
	if file.TotalPerformance == nil {
		return []series.Trade{}, nil
	}

	trades := make([]series.Trade, 0, len(file.TotalPerformance.ClosedTrades))
	for i, ct := range file.TotalPerformance.ClosedTrades {
		entry, err := parseTradeTime(ct.EntryTime)
		if err != nil {
			return nil, errors.NewMalformedDataError(componentLoader,
				"closed trade %d has unparsable entry time %q", i, ct.EntryTime)
		}
		exit, err := parseTradeTime(ct.ExitTime)
		if err != nil {
			return nil, errors.NewMalformedDataError(componentLoader,
				"closed trade %d has unparsable exit time %q", i, ct.ExitTime)
		}
		trades = append(trades, series.Trade{
			EntryTime:  entry,
			ExitTime:   exit,
			ProfitLoss: ct.ProfitLoss,
			Fees:       ct.TotalFees,
		})
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].EntryTime.Before(trades[j].EntryTime)
	})

	return trades, nil
}

func parseTradeTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range tradeTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
