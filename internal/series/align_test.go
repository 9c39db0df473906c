package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leanquant/tearsheet/internal/errors"
)

func returnsAt(days []int, value float64) Returns {
	r := make(Returns, 0, len(days))
	for _, d := range days {
		r = append(r, Point{
			Timestamp: time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC),
			Value:     value,
		})
	}
	return r
}

// TestAlign_InnerJoin tests that alignment keeps only shared timestamps
func TestAlign_InnerJoin(t *testing.T) {
	strategy := returnsAt([]int{1, 2, 3, 4}, 0.01)
	benchmark := returnsAt([]int{2, 3, 5}, 0.02)

	alignedStrategy, alignedBenchmark, err := Align(strategy, benchmark)
	require.NoError(t, err)

	require.Len(t, alignedStrategy, 2)
	require.Len(t, alignedBenchmark, 2)
	assert.Equal(t, strategy[1].Timestamp, alignedStrategy[0].Timestamp)
	assert.Equal(t, strategy[2].Timestamp, alignedStrategy[1].Timestamp)
	assert.Equal(t, alignedStrategy[0].Timestamp, alignedBenchmark[0].Timestamp)
	assert.Equal(t, alignedStrategy[1].Timestamp, alignedBenchmark[1].Timestamp)
	assert.True(t, alignedStrategy[0].Timestamp.Before(alignedStrategy[1].Timestamp))
}

// TestAlign_PreservesValues tests that each side keeps its own values
func TestAlign_PreservesValues(t *testing.T) {
	strategy := returnsAt([]int{1, 2}, 0.01)
	benchmark := returnsAt([]int{1, 2}, 0.02)

	alignedStrategy, alignedBenchmark, err := Align(strategy, benchmark)
	require.NoError(t, err)

	for _, p := range alignedStrategy {
		assert.Equal(t, 0.01, p.Value)
	}
	for _, p := range alignedBenchmark {
		assert.Equal(t, 0.02, p.Value)
	}
}

// TestAlign_NoOverlap tests that disjoint domains fail
func TestAlign_NoOverlap(t *testing.T) {
	strategy := returnsAt([]int{1, 2}, 0.01)
	benchmark := returnsAt([]int{3, 4}, 0.02)

	_, _, err := Align(strategy, benchmark)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrorCategoryNoOverlap))
}

// TestAlign_EmptyInputs tests that empty inputs count as no overlap
func TestAlign_EmptyInputs(t *testing.T) {
	_, _, err := Align(Returns{}, Returns{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrorCategoryNoOverlap))
}
