// Package window generates the tapers applied to Welch segments before the
// transform.
package window

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function. The zero value is Hann.
type Type int

const (
	TypeHann Type = iota
	TypeHamming
	TypeBlackman
	TypeRectangular
)

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

var names = map[Type]string{
	TypeHann:        "hann",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeRectangular: "rectangular",
}

var errMismatchedLength = errors.New("window: samples and coefficients must have same length")

// String returns the lower-case window name.
func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("window(%d)", int(t))
}

// ParseType returns the window with the given name, ignoring case.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range names {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("window: unknown window %q", name)
}

// Generate returns the symmetric window of the given length, so both end
// points take the value at phase 0. A single coefficient is always 1.
func Generate(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}
	for i := range out {
		out[i] = evalWindow(t, float64(i)/float64(length-1))
	}
	return out
}

// Apply multiplies samples by coeffs into dst.
func Apply(dst, samples, coeffs []float64) error {
	if len(samples) != len(coeffs) || len(dst) != len(samples) {
		return errMismatchedLength
	}
	vecmath.MulBlock(dst, samples, coeffs)
	return nil
}

// CoherentGain returns sum(w)/N, the DC response of the window.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	return sum / float64(len(coeffs))
}

// EquivalentNoiseBandwidth returns the ENBW in bins, N*sum(w^2)/sum(w)^2.
func EquivalentNoiseBandwidth(coeffs []float64) float64 {
	sum, sumSq := 0.0, 0.0
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}
	if sum == 0 {
		return 0
	}
	return float64(len(coeffs)) * sumSq / (sum * sum)
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x
	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}
	return sum
}
