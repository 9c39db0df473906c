package data

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leanquant/tearsheet/internal/errors"
)

const benchmarkCSV = `20240101 00:00,42000,42500,41800,42200,1500
20240102 00:00,42200,43000,42100,42900,1800
20240103 00:00,42900,43200,42500,42700,1200
20240104 00:00,42700,43500,42600,43400,2000
`

func writeCSVFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "btcusdt_trade.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeZipFixture(t *testing.T, memberName, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "btcusdt_trade.zip")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	w := zip.NewWriter(file)
	member, err := w.Create(memberName)
	require.NoError(t, err)
	_, err = member.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

// TestLoadPrices_CSV tests plain CSV loading with close-column extraction
func TestLoadPrices_CSV(t *testing.T) {
	provider := NewBenchmarkProvider()
	path := writeCSVFixture(t, benchmarkCSV)

	prices, err := provider.LoadPrices(path, time.Time{}, time.Time{})
	require.NoError(t, err)

	require.Len(t, prices, 4)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), prices[0].Timestamp)
	assert.Equal(t, 42200.0, prices[0].Value)
	assert.Equal(t, 43400.0, prices[3].Value)
}

// TestLoadPrices_Zip tests loading from a zip archive
func TestLoadPrices_Zip(t *testing.T) {
	provider := NewBenchmarkProvider()
	path := writeZipFixture(t, "btcusdt_trade.csv", benchmarkCSV)

	prices, err := provider.LoadPrices(path, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, prices, 4)
}

// TestLoadPrices_ZipWithoutCSV tests the missing-member error
func TestLoadPrices_ZipWithoutCSV(t *testing.T) {
	provider := NewBenchmarkProvider()
	path := writeZipFixture(t, "readme.txt", "not market data")

	_, err := provider.LoadPrices(path, time.Time{}, time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrorCategoryMissingData))
}

// TestLoadPrices_DateFilter tests the inclusive [start, end] filter
func TestLoadPrices_DateFilter(t *testing.T) {
	provider := NewBenchmarkProvider()
	path := writeCSVFixture(t, benchmarkCSV)

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	prices, err := provider.LoadPrices(path, start, end)
	require.NoError(t, err)

	require.Len(t, prices, 2)
	assert.Equal(t, start, prices[0].Timestamp)
	assert.Equal(t, end, prices[1].Timestamp)
}

// TestLoadPrices_EmptyRange tests that filtering away everything is an error
func TestLoadPrices_EmptyRange(t *testing.T) {
	provider := NewBenchmarkProvider()
	path := writeCSVFixture(t, benchmarkCSV)

	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := provider.LoadPrices(path, start, time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrorCategoryMissingData))
}

// TestLoadPrices_SkipsBadRows tests that malformed rows are skipped, not fatal
func TestLoadPrices_SkipsBadRows(t *testing.T) {
	provider := NewBenchmarkProvider()
	path := writeCSVFixture(t, `20240101 00:00,42000,42500,41800,42200,1500
garbage line with no commas at all maybe
20240102 00:00,42200,43000,42100,not-a-number,1800
20240103 00:00,42900,43200,42500,-5,1200
20240104 00:00,42700,43500,42600,43400,2000
`)

	prices, err := provider.LoadPrices(path, time.Time{}, time.Time{})
	require.NoError(t, err)

	require.Len(t, prices, 2)
	assert.Equal(t, 42200.0, prices[0].Value)
	assert.Equal(t, 43400.0, prices[1].Value)
}

// TestLoadPrices_DuplicateTimestamps tests the hard duplicate error
func TestLoadPrices_DuplicateTimestamps(t *testing.T) {
	provider := NewBenchmarkProvider()
	path := writeCSVFixture(t, `20240101 00:00,42000,42500,41800,42200,1500
20240101 00:00,42200,43000,42100,42900,1800
`)

	_, err := provider.LoadPrices(path, time.Time{}, time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrorCategoryMalformedData))
}

// TestLoadPrices_SortsOutOfOrder tests chronological ordering of the output
func TestLoadPrices_SortsOutOfOrder(t *testing.T) {
	provider := NewBenchmarkProvider()
	path := writeCSVFixture(t, `20240103 00:00,42900,43200,42500,42700,1200
20240101 00:00,42000,42500,41800,42200,1500
20240102 00:00,42200,43000,42100,42900,1800
`)

	prices, err := provider.LoadPrices(path, time.Time{}, time.Time{})
	require.NoError(t, err)

	require.Len(t, prices, 3)
	for i := 1; i < len(prices); i++ {
		assert.True(t, prices[i-1].Timestamp.Before(prices[i].Timestamp))
	}
}

// TestLoadPrices_MissingFile tests the missing-file classification
func TestLoadPrices_MissingFile(t *testing.T) {
	provider := NewBenchmarkProvider()

	_, err := provider.LoadPrices(filepath.Join(t.TempDir(), "nope.csv"), time.Time{}, time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrorCategoryMissingData))
}
