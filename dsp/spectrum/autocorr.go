package spectrum

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

const (
	// MaxCandidates is the number of autocorrelation peaks kept for synthesis.
	MaxCandidates = 5
	// MinLag is the smallest lag searched for periodicity.
	MinLag = 5
	// GridDivisions sets the synthesis grid step to fs/GridDivisions.
	GridDivisions = 512
	// BumpWidth is the Gaussian standard deviation relative to its center frequency.
	BumpWidth = 0.1

	autocorrEpsilon = 1e-10
	// tieTolerance is the correlation difference treated as equal when ranking.
	tieTolerance = 1e-9
)

// Candidate is a local maximum of the autocorrelation.
type Candidate struct {
	Lag       int
	Value     float64
	Frequency float64
}

// Autocorrelate returns the normalized autocorrelation of x for lags
// 0..len(x)-1. The mean is removed first and each lag is normalized by the
// energy of its own overlap:
//
//	r(lag) = sum x[i]x[i+lag] / sqrt(sum x[i]^2 * sum x[i+lag]^2 + eps)
func Autocorrelate(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range x {
		centered[i] = v - mean
	}

	r := make([]float64, n)
	for lag := 0; lag < n; lag++ {
		var sum, sq1, sq2 float64
		for i := 0; i < n-lag; i++ {
			a := centered[i]
			b := centered[i+lag]
			sum += a * b
			sq1 += a * a
			sq2 += b * b
		}
		r[lag] = sum / math.Sqrt(sq1*sq2+autocorrEpsilon)
	}
	return r
}

// LagRange returns the inclusive lag search range for a series of n samples
// at fs: [max(MinLag, fs/MaxHz), min(n/2, fs/MinHz)].
func LagRange(n int, fs float64) (lo, hi int) {
	lo = max(MinLag, int(math.Floor(fs/core.MaxHz)))
	hi = min(n/2, int(math.Floor(fs/core.MinHz)))
	return lo, hi
}

// FindCandidates returns up to limit strict local maxima of r inside the lag
// range for fs, strongest first. Maxima with non-positive correlation are not
// periodicities and are dropped, so a series whose only maxima are negative
// has no candidates and falls through to Welch instead of being synthesized
// from them.
//
// A periodic series correlates equally well at every multiple of its period,
// so values within tieTolerance rank by the shorter lag, and a maximum whose
// lag is an exact multiple of a stronger candidate's lag is dropped as a
// repeat of that period.
func FindCandidates(r []float64, fs float64, limit int) []Candidate {
	lo, hi := LagRange(len(r), fs)

	var maxima []Candidate
	for lag := lo; lag <= hi && lag+1 < len(r); lag++ {
		if lag < 1 {
			continue
		}
		v := r[lag]
		if v > r[lag-1] && v > r[lag+1] && v > 0 {
			maxima = append(maxima, Candidate{Lag: lag, Value: v, Frequency: fs / float64(lag)})
		}
	}

	sort.SliceStable(maxima, func(i, j int) bool {
		a, b := maxima[i], maxima[j]
		if math.Abs(a.Value-b.Value) <= tieTolerance {
			return a.Lag < b.Lag
		}
		return a.Value > b.Value
	})

	var out []Candidate
	for _, c := range maxima {
		if limit > 0 && len(out) == limit {
			break
		}
		if !repeatsPeriod(c, out) {
			out = append(out, c)
		}
	}
	return out
}

// repeatsPeriod reports whether c's lag is a multiple of a shorter kept lag.
func repeatsPeriod(c Candidate, kept []Candidate) bool {
	for _, k := range kept {
		if k.Lag < c.Lag && c.Lag%k.Lag == 0 {
			return true
		}
	}
	return false
}

// Synthesize builds a spectrum on the grid k*fs/GridDivisions, 0 <= f <= fs/2,
// as a sum of Gaussian bumps centered at each candidate frequency with
// standard deviation BumpWidth*frequency and height equal to the candidate value.
// The result is not band-limited.
func Synthesize(cands []Candidate, fs float64) Spectrum {
	step := fs / GridDivisions
	points := GridDivisions/2 + 1

	s := Spectrum{
		Freqs: make([]float64, points),
		Power: make([]float64, points),
	}
	for k := 0; k < points; k++ {
		f := float64(k) * step
		p := 0.0
		for _, c := range cands {
			sigma := BumpWidth * c.Frequency
			d := f - c.Frequency
			p += c.Value * math.Exp(-(d*d)/(2*sigma*sigma))
		}
		s.Freqs[k] = f
		s.Power[k] = p
	}
	return s
}

// Autocorrelation is the periodicity-based strategy.
type Autocorrelation struct {
	// Limit overrides MaxCandidates when > 0.
	Limit int
}

// Method implements [Strategy].
func (Autocorrelation) Method() Method { return MethodAutocorrelation }

// Candidates returns the candidates Estimate would synthesize from.
func (a Autocorrelation) Candidates(x []float64, fs float64) []Candidate {
	limit := a.Limit
	if limit <= 0 {
		limit = MaxCandidates
	}
	return FindCandidates(Autocorrelate(x), fs, limit)
}

// Estimate implements [Strategy].
func (a Autocorrelation) Estimate(x []float64, fs float64) (Spectrum, error) {
	if err := validateSampleRate(fs); err != nil {
		return Spectrum{}, err
	}
	if len(x) < MinSegmentLength {
		return Spectrum{}, fmt.Errorf("%w: %d samples", ErrTooShort, len(x))
	}

	cands := a.Candidates(x, fs)
	if len(cands) == 0 {
		return Spectrum{}, ErrNoCandidates
	}

	band := Synthesize(cands, fs).TremorBand()
	if !usable(band) {
		return Spectrum{}, ErrNoPower
	}
	return band, nil
}
