// Package frequency describes the shape of a band-limited power spectrum.
package frequency

import "math"

// RolloffFraction is the share of power below the rolloff frequency.
const RolloffFraction = 0.85

// Stats holds spectral shape descriptors. Frequencies are in Hz.
type Stats struct {
	Bins  int
	Total float64 // sum of power
	Max   float64
	// MaxFreq is the frequency of the first maximum.
	MaxFreq float64

	Centroid  float64 // power-weighted mean frequency
	Spread    float64 // power-weighted standard deviation around Centroid
	Flatness  float64 // geometric over arithmetic mean of power, 0..1
	Rolloff   float64 // frequency below which RolloffFraction of power lies
	Bandwidth float64 // half-power width around the peak
}

// Calculate computes all descriptors for power sampled at freqs. freqs must
// be ascending and as long as power; negative power is treated as zero.
// Empty input or zero total power yields a zero Stats with Bins set.
func Calculate(freqs, power []float64) Stats {
	n := min(len(freqs), len(power))
	s := Stats{Bins: n}
	if n == 0 {
		return s
	}

	best := 0
	for i := 0; i < n; i++ {
		p := clean(power[i])
		s.Total += p
		if p > clean(power[best]) {
			best = i
		}
	}
	if s.Total == 0 {
		return s
	}

	s.Max = clean(power[best])
	s.MaxFreq = freqs[best]
	s.Centroid = Centroid(freqs[:n], power[:n])
	s.Spread = spread(freqs[:n], power[:n], s.Centroid, s.Total)
	s.Flatness = Flatness(power[:n])
	s.Rolloff = rolloff(freqs[:n], power[:n], RolloffFraction*s.Total)
	s.Bandwidth = bandwidth(freqs[:n], power[:n], best)
	return s
}

func clean(p float64) float64 {
	if p > 0 && !math.IsInf(p, 0) {
		return p
	}
	return 0
}

// Centroid returns the power-weighted mean frequency,
//
//	centroid = sum(f_i * P_i) / sum(P_i)
//
// or 0 when there is no power.
func Centroid(freqs, power []float64) float64 {
	sum, weighted := 0.0, 0.0
	for i := 0; i < min(len(freqs), len(power)); i++ {
		p := clean(power[i])
		sum += p
		weighted += freqs[i] * p
	}
	if sum == 0 {
		return 0
	}
	return weighted / sum
}

func spread(freqs, power []float64, cent, total float64) float64 {
	acc := 0.0
	for i := range freqs {
		d := freqs[i] - cent
		acc += d * d * clean(power[i])
	}
	return math.Sqrt(acc / total)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
// A single zero bin makes the geometric mean, and so the flatness, zero.
func Flatness(power []float64) float64 {
	if len(power) == 0 {
		return 0
	}

	sumLin, sumLog := 0.0, 0.0
	for _, v := range power {
		p := clean(v)
		if p == 0 {
			return 0
		}
		sumLin += p
		sumLog += math.Log(p)
	}

	n := float64(len(power))
	return math.Exp(sumLog/n) / (sumLin / n)
}

func rolloff(freqs, power []float64, threshold float64) float64 {
	cum := 0.0
	for i := range power {
		cum += clean(power[i])
		if cum >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// bandwidth finds the half-power points on both sides of the peak at bin
// best, interpolating linearly between bins. A side that never drops below
// half power extends to the end of the spectrum.
func bandwidth(freqs, power []float64, best int) float64 {
	threshold := clean(power[best]) / 2

	lower := freqs[0]
	for i := best; i >= 1; i-- {
		if clean(power[i-1]) <= threshold {
			lower = interpFreq(freqs[i-1], freqs[i], clean(power[i-1]), clean(power[i]), threshold)
			break
		}
	}

	upper := freqs[len(freqs)-1]
	for i := best; i < len(freqs)-1; i++ {
		if clean(power[i+1]) <= threshold {
			upper = interpFreq(freqs[i], freqs[i+1], clean(power[i]), clean(power[i+1]), threshold)
			break
		}
	}
	return math.Max(0, upper-lower)
}

// interpFreq returns the frequency between fa and fb where power crosses
// threshold.
func interpFreq(fa, fb, pa, pb, threshold float64) float64 {
	denom := pb - pa
	if denom == 0 {
		return (fa + fb) / 2
	}
	t := (threshold - pa) / denom
	return fa + t*(fb-fa)
}
