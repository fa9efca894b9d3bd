package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireBandSpectrum fails t unless freqs and power are non-empty parallel
// slices with ascending freqs inside [lo, hi] and finite, non-negative power.
func RequireBandSpectrum(t testing.TB, freqs, power []float64, lo, hi float64) {
	t.Helper()
	if len(freqs) == 0 {
		t.Fatal("empty spectrum")
	}
	if len(freqs) != len(power) {
		t.Fatalf("length mismatch: %d freqs, %d power values", len(freqs), len(power))
	}
	for i, f := range freqs {
		if f < lo || f > hi {
			t.Fatalf("index %d: frequency %v outside [%v, %v]", i, f, lo, hi)
		}
		if i > 0 && f < freqs[i-1] {
			t.Fatalf("index %d: frequency %v below previous %v", i, f, freqs[i-1])
		}
		if p := power[i]; p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			t.Fatalf("index %d: invalid power %v", i, p)
		}
	}
}

// PeakFrequency returns the frequency of the first maximum of power, or 0 for
// an empty spectrum.
func PeakFrequency(freqs, power []float64) float64 {
	if len(freqs) == 0 {
		return 0
	}
	best := 0
	for i, p := range power {
		if p > power[best] {
			best = i
		}
	}
	return freqs[best]
}
