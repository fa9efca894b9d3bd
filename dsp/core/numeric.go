package core

import "math"

const defaultEpsilon = 1e-12

// Band of interest for tremor analysis, in Hz.
const (
	MinHz = 1.0
	MaxHz = 12.0
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsPowerOfTwo reports whether n is an exact positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// FloorPowerOfTwo returns the largest power of two <= n, or 0 for n < 1.
func FloorPowerOfTwo(n int) int {
	if n < 1 {
		return 0
	}

	p := 1
	for p<<1 <= n {
		p <<= 1
	}

	return p
}

// InBand reports whether freq lies in [MinHz, MaxHz].
func InBand(freq float64) bool {
	return freq >= MinHz && freq <= MaxHz
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
