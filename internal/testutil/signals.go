// Package testutil provides deterministic signals and float assertions shared
// by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// TremorSine returns amplitude*sin(2*pi*freqHz*t) + offset sampled at
// sampleRate, the canonical synthetic motion series.
func TremorSine(freqHz, sampleRate, amplitude, offset float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude*math.Sin(step*float64(i)) + offset
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Add returns the element-wise sum of a and b, truncated to the shorter one.
func Add(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}
