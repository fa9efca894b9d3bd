package spectrum

import (
	"math"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

const (
	// SyntheticCenter is the center of the placeholder bump in Hz.
	SyntheticCenter = 5.0
	// SyntheticStep is the grid spacing of the placeholder spectrum in Hz.
	SyntheticStep = 0.1
)

// Synthetic is the last-resort strategy. It ignores its input and returns
// exp(-((f-5)/1)^2) on a 0.1 Hz grid over the tremor band, so callers always
// get a well-formed spectrum. Seeing it means no real estimate was possible.
type Synthetic struct{}

// Method implements [Strategy].
func (Synthetic) Method() Method { return MethodSynthetic }

// Estimate implements [Strategy]. It never fails.
func (Synthetic) Estimate([]float64, float64) (Spectrum, error) {
	return SyntheticSpectrum(), nil
}

// SyntheticPower is the placeholder power at f.
func SyntheticPower(f float64) float64 {
	d := (f - SyntheticCenter) / 1
	return math.Exp(-d * d)
}

// SyntheticSpectrum returns the placeholder spectrum.
func SyntheticSpectrum() Spectrum {
	n := int(math.Round((core.MaxHz-core.MinHz)/SyntheticStep)) + 1
	s := Spectrum{
		Freqs: make([]float64, n),
		Power: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		f := math.Round((core.MinHz+float64(i)*SyntheticStep)*10) / 10
		s.Freqs[i] = f
		s.Power[i] = SyntheticPower(f)
	}
	return s
}
