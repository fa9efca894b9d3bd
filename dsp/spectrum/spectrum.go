package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

// Spectrum holds power per frequency. Freqs is ascending but not necessarily
// uniformly spaced; Power has the same length and is non-negative.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// Len returns the number of frequency points.
func (s Spectrum) Len() int { return len(s.Freqs) }

// Empty reports whether the spectrum has no points.
func (s Spectrum) Empty() bool { return len(s.Freqs) == 0 }

// Band returns the points with lo <= freq <= hi as a new Spectrum.
func (s Spectrum) Band(lo, hi float64) Spectrum {
	out := Spectrum{
		Freqs: make([]float64, 0, len(s.Freqs)),
		Power: make([]float64, 0, len(s.Power)),
	}
	for i, f := range s.Freqs {
		if f >= lo && f <= hi {
			out.Freqs = append(out.Freqs, f)
			out.Power = append(out.Power, s.Power[i])
		}
	}
	return out
}

// TremorBand restricts s to [core.MinHz, core.MaxHz].
func (s Spectrum) TremorBand() Spectrum {
	out := Spectrum{}
	for i, f := range s.Freqs {
		if core.InBand(f) {
			out.Freqs = append(out.Freqs, f)
			out.Power = append(out.Power, s.Power[i])
		}
	}
	return out
}

// TotalPower returns the sum of all power values.
func (s Spectrum) TotalPower() float64 {
	sum := 0.0
	for _, p := range s.Power {
		sum += p
	}
	return sum
}

// Validate checks the structural invariants of s.
func (s Spectrum) Validate() error {
	if len(s.Freqs) != len(s.Power) {
		return fmt.Errorf("spectrum: freqs/power length mismatch: %d != %d", len(s.Freqs), len(s.Power))
	}
	for i := range s.Freqs {
		if i > 0 && s.Freqs[i] < s.Freqs[i-1] {
			return fmt.Errorf("spectrum: freqs not ascending at index %d", i)
		}
		if s.Power[i] < 0 || !core.IsFinite(s.Power[i]) {
			return fmt.Errorf("spectrum: invalid power %v at index %d", s.Power[i], i)
		}
	}
	return nil
}
