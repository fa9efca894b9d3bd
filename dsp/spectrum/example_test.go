package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tremor/dsp/spectrum"
)

func ExampleEstimator_Estimate() {
	fs := 30.0
	x := make([]float64, 300)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 6 * float64(i) / fs)
	}

	e := spectrum.NewEstimator(spectrum.WithStrategies(spectrum.Welch{}, spectrum.Synthetic{}))
	est := e.Estimate(x, fs)

	best := 0
	for i, p := range est.Spectrum.Power {
		if p > est.Spectrum.Power[best] {
			best = i
		}
	}
	fmt.Printf("%s %.2f Hz\n", est.Method, est.Spectrum.Freqs[best])
	// Output:
	// welch 5.98 Hz
}

func ExampleSyntheticSpectrum() {
	s := spectrum.SyntheticSpectrum()
	fmt.Printf("%d points, %.1f..%.1f Hz, power(5 Hz)=%.1f\n", s.Len(), s.Freqs[0], s.Freqs[s.Len()-1], spectrum.SyntheticPower(5))
	// Output:
	// 111 points, 1.0..12.0 Hz, power(5 Hz)=1.0
}
