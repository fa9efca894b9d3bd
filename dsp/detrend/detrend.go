package detrend

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

// Window is the moving-average length used for tremor analysis.
const Window = 5

// ErrEmptyInput is returned when the series has no samples.
var ErrEmptyInput = errors.New("detrend: empty input")

// MovingAverage returns x minus its causal moving average over k samples.
// The result has the same length as x; x is not modified.
func MovingAverage(x []float64, k int) ([]float64, error) {
	return MovingAverageInto(nil, x, k)
}

// MovingAverageInto is [MovingAverage] writing into dst, which is reused when
// it has enough capacity. dst must not alias x.
func MovingAverageInto(dst, x []float64, k int) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if k < 1 {
		return nil, fmt.Errorf("detrend: window must be >= 1: %d", k)
	}

	out := core.EnsureLen(dst, len(x))
	for t := range x {
		start := t - k + 1
		if start < 0 {
			start = 0
		}

		mean := 0.0
		for i := start; i <= t; i++ {
			mean += x[i]
		}
		mean /= float64(t - start + 1)

		out[t] = x[t] - mean
	}

	return out, nil
}

// Detrend applies [MovingAverage] with the default [Window].
// An empty series yields an empty result.
func Detrend(x []float64) []float64 {
	out, err := MovingAverage(x, Window)
	if err != nil {
		return []float64{}
	}
	return out
}
