package tremor

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-tremor/dsp/spectrum"
)

// SignificanceThreshold is the default minimum peak power for aggregation.
const SignificanceThreshold = 0.1

// Peak is the dominant point of a spectrum. The zero Peak means no peak.
type Peak struct {
	Frequency float64
	Power     float64
}

// IsZero reports whether p is the "no peak" sentinel.
func (p Peak) IsZero() bool { return p.Frequency == 0 && p.Power == 0 }

// FindPeak returns the point of s with maximum power. Ties go to the lowest
// frequency. An empty spectrum yields the zero Peak.
func FindPeak(s spectrum.Spectrum) Peak {
	if s.Empty() {
		return Peak{}
	}
	i := floats.MaxIdx(s.Power)
	return Peak{Frequency: s.Freqs[i], Power: s.Power[i]}
}

// Thresholds maps an estimation method to its significance threshold.
// Powers from different methods are on different scales, so the threshold
// is chosen per method. Methods without an entry use SignificanceThreshold.
type Thresholds map[spectrum.Method]float64

// DefaultThresholds applies SignificanceThreshold to every method.
func DefaultThresholds() Thresholds {
	return Thresholds{
		spectrum.MethodAutocorrelation: SignificanceThreshold,
		spectrum.MethodWelch:           SignificanceThreshold,
		spectrum.MethodSynthetic:       SignificanceThreshold,
	}
}

// CalibratedThresholds requires a clear periodicity from the autocorrelation
// path and never accepts the synthetic placeholder.
func CalibratedThresholds() Thresholds {
	return Thresholds{
		spectrum.MethodAutocorrelation: 0.3,
		spectrum.MethodWelch:           SignificanceThreshold,
		spectrum.MethodSynthetic:       math.Inf(1),
	}
}

// Significant reports whether p, produced by method m, qualifies for
// aggregation. Its power must exceed the threshold strictly.
func (t Thresholds) Significant(m spectrum.Method, p Peak) bool {
	if m == spectrum.MethodNone || p.IsZero() {
		return false
	}
	th, ok := t[m]
	if !ok {
		th = SignificanceThreshold
	}
	return p.Power > th
}
