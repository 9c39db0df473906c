package series

import (
	"github.com/leanquant/tearsheet/internal/errors"
)

const componentAligner = "aligner"

// Align inner-joins two returns sequences on exact timestamps and returns the
// equal-length aligned pair (strategy first), ascending order preserved.
// Points with no counterpart in the other series are dropped. Interpolation
// and resampling are deliberately not performed; they would change the
// statistical meaning of the compared series.
func Align(strategy, benchmark Returns) (Returns, Returns, error) {
	benchByTime := make(map[int64]Point, len(benchmark))
	for _, p := range benchmark {
		benchByTime[p.Timestamp.UnixNano()] = p
	}

	alignedStrategy := make(Returns, 0, len(strategy))
	alignedBenchmark := make(Returns, 0, len(strategy))
	for _, p := range strategy {
		if b, ok := benchByTime[p.Timestamp.UnixNano()]; ok {
			alignedStrategy = append(alignedStrategy, p)
			alignedBenchmark = append(alignedBenchmark, b)
		}
	}

	if len(alignedStrategy) == 0 {
		return nil, nil, errors.NewNoOverlapError(componentAligner,
			"benchmark and strategy timestamps have no overlap (%d strategy, %d benchmark points)",
			len(strategy), len(benchmark))
	}

	return alignedStrategy, alignedBenchmark, nil
}
