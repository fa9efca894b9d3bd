package spectrum

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooShort is returned when a series or segment is below the minimum length.
	ErrTooShort = errors.New("spectrum: series too short")
	// ErrNotPowerOfTwo is returned by [FFT] for lengths that are not powers of two.
	ErrNotPowerOfTwo = errors.New("spectrum: length is not a power of two")
	// ErrNoCandidates is returned when the autocorrelation has no usable periodicity.
	ErrNoCandidates = errors.New("spectrum: no autocorrelation candidates")
	// ErrNoPower is returned when a strategy produced only zero or non-finite power.
	ErrNoPower = errors.New("spectrum: no usable power in band")
	// ErrInvalidSampleRate is returned for non-positive or non-finite sample rates.
	ErrInvalidSampleRate = errors.New("spectrum: invalid sample rate")
)

func validateSampleRate(fs float64) error {
	if fs <= 0 || math.IsNaN(fs) || math.IsInf(fs, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, fs)
	}
	return nil
}
