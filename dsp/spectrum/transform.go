package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

// Transform computes the discrete Fourier transform of a real input.
// dst must hold at least len(src) bins.
type Transform interface {
	Forward(dst []complex128, src []float64) error
}

// FFT is a radix-2 fast transform. It only accepts power-of-two lengths and
// caches one plan per length, so a single FFT must not be shared between
// goroutines.
type FFT struct {
	plans map[int]*algofft.Plan[complex128]
	in    []complex128
}

// NewFFT returns an FFT with an empty plan cache.
func NewFFT() *FFT {
	return &FFT{plans: make(map[int]*algofft.Plan[complex128])}
}

// Forward implements [Transform].
func (f *FFT) Forward(dst []complex128, src []float64) error {
	n := len(src)
	if !core.IsPowerOfTwo(n) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}
	if len(dst) < n {
		return fmt.Errorf("spectrum: fft destination too small: %d < %d", len(dst), n)
	}

	plan, err := f.plan(n)
	if err != nil {
		return err
	}

	if cap(f.in) < n {
		f.in = make([]complex128, n)
	}
	in := f.in[:n]
	for i, v := range src {
		in[i] = complex(v, 0)
	}

	if err := plan.Forward(dst[:n], in); err != nil {
		return fmt.Errorf("spectrum: forward fft failed: %w", err)
	}
	return nil
}

func (f *FFT) plan(n int) (*algofft.Plan[complex128], error) {
	if f.plans == nil {
		f.plans = make(map[int]*algofft.Plan[complex128])
	}
	if p, ok := f.plans[n]; ok {
		return p, nil
	}
	p, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create fft plan: %w", err)
	}
	f.plans[n] = p
	return p, nil
}

// DFT is the direct O(N^2) transform for arbitrary lengths.
type DFT struct{}

// Forward implements [Transform].
func (DFT) Forward(dst []complex128, src []float64) error {
	n := len(src)
	if n == 0 {
		return ErrTooShort
	}
	if len(dst) < n {
		return fmt.Errorf("spectrum: dft destination too small: %d < %d", len(dst), n)
	}

	for k := 0; k < n; k++ {
		var re, im float64
		for t, x := range src {
			angle := -2 * math.Pi * float64(k) * float64(t) / float64(n)
			re += x * math.Cos(angle)
			im += x * math.Sin(angle)
		}
		dst[k] = complex(re, im)
	}
	return nil
}
