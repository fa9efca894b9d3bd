// Package time summarizes motion series in the time domain.
package time

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats holds time-domain statistics of a motion energy series.
type Stats struct {
	Length int
	Mean   float64
	StdDev float64 // sample standard deviation, 0 for fewer than two values
	RMS    float64
	Max    float64
	MaxPos int
	Energy float64 // sum of squares
	// ZeroCrossings counts sign changes around the mean.
	ZeroCrossings int
}

// Calculate computes all statistics of x.
func Calculate(x []float64) Stats {
	n := len(x)
	if n == 0 {
		return Stats{}
	}

	s := Stats{Length: n, Max: x[0]}
	if n > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	} else {
		s.Mean = x[0]
	}

	for i, v := range x {
		s.Energy += v * v
		if v > s.Max {
			s.Max = v
			s.MaxPos = i
		}
	}
	s.RMS = math.Sqrt(s.Energy / float64(n))
	s.ZeroCrossings = zeroCrossings(x, s.Mean)
	return s
}

// CrossingRate returns the oscillation frequency implied by the zero
// crossings of a series sampled at fs: crossings / 2 / duration. It is a
// coarse cross-check for a spectral peak.
func (s Stats) CrossingRate(fs float64) float64 {
	if s.Length < 2 || fs <= 0 {
		return 0
	}
	return float64(s.ZeroCrossings) / 2 / (float64(s.Length) / fs)
}

func zeroCrossings(x []float64, ref float64) int {
	count := 0
	prev := 0.0
	for _, v := range x {
		d := v - ref
		if d == 0 {
			continue
		}
		if prev != 0 && (d > 0) != (prev > 0) {
			count++
		}
		prev = d
	}
	return count
}

// StreamingStats accumulates mean, variance and maximum one value at a time
// using Welford's online algorithm.
type StreamingStats struct {
	n      int
	mean   float64
	m2     float64
	sumSq  float64
	max    float64
	maxPos int
}

// NewStreamingStats returns an empty accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Add includes one value.
func (s *StreamingStats) Add(v float64) {
	if s.n == 0 || v > s.max {
		s.max = v
		s.maxPos = s.n
	}
	s.n++
	delta := v - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (v - s.mean)
	s.sumSq += v * v
}

// Update includes every value of x.
func (s *StreamingStats) Update(x []float64) {
	for _, v := range x {
		s.Add(v)
	}
}

// Result returns the statistics so far. ZeroCrossings is not tracked and
// stays 0.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{}
	}
	r := Stats{
		Length: s.n,
		Mean:   s.mean,
		RMS:    math.Sqrt(s.sumSq / float64(s.n)),
		Max:    s.max,
		MaxPos: s.maxPos,
		Energy: s.sumSq,
	}
	if s.n > 1 {
		r.StdDev = math.Sqrt(s.m2 / float64(s.n-1))
	}
	return r
}

// Reset clears the accumulator.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
