package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leanquant/tearsheet/internal/errors"
)

func equityAt(day int, value float64) EquityPoint {
	return EquityPoint{
		Timestamp: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Value:     value,
	}
}

// TestFromEquity_Basic tests return derivation from consecutive equity pairs
func TestFromEquity_Basic(t *testing.T) {
	equity := []EquityPoint{
		equityAt(1, 100),
		equityAt(2, 110),
		equityAt(3, 121),
	}

	returns, err := FromEquity(equity)
	require.NoError(t, err)

	require.Len(t, returns, 2) // always len(equity)-1
	assert.InDelta(t, 0.10, returns[0].Value, 1e-9)
	assert.InDelta(t, 0.10, returns[1].Value, 1e-9)
	assert.Equal(t, equity[1].Timestamp, returns[0].Timestamp)
	assert.Equal(t, equity[2].Timestamp, returns[1].Timestamp)
}

// TestFromEquity_NegativeReturn tests that declines produce negative returns
func TestFromEquity_NegativeReturn(t *testing.T) {
	equity := []EquityPoint{
		equityAt(1, 200),
		equityAt(2, 100),
	}

	returns, err := FromEquity(equity)
	require.NoError(t, err)

	require.Len(t, returns, 1)
	assert.InDelta(t, -0.5, returns[0].Value, 1e-9)
}

// TestFromEquity_TooShort tests that short curves yield empty returns
func TestFromEquity_TooShort(t *testing.T) {
	for _, equity := range [][]EquityPoint{nil, {equityAt(1, 100)}} {
		returns, err := FromEquity(equity)
		require.NoError(t, err)
		assert.Empty(t, returns)
	}
}

// TestFromEquity_ZeroValue tests that a zero previous value is an error, not
// a silently skipped point
func TestFromEquity_ZeroValue(t *testing.T) {
	equity := []EquityPoint{
		equityAt(1, 100),
		equityAt(2, 0),
		equityAt(3, 50),
	}

	_, err := FromEquity(equity)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrorCategoryMalformedData))
}

// TestEquityFromReturns_Compounds tests the synthetic curve reconstruction
func TestEquityFromReturns_Compounds(t *testing.T) {
	returns := Returns{
		{Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Value: 0.10},
		{Timestamp: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Value: -0.50},
	}

	equity := EquityFromReturns(100, returns)

	require.Len(t, equity, 2)
	assert.InDelta(t, 110, equity[0].Value, 1e-9)
	assert.InDelta(t, 55, equity[1].Value, 1e-9)
}
