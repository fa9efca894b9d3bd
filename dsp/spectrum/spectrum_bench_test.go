package spectrum

import (
	"testing"

	"github.com/cwbudde/algo-tremor/internal/testutil"
)

func benchSeries() []float64 {
	return testutil.Add(testutil.TremorSine(5.3, 30, 1, 0, 300), testutil.DeterministicNoise(1, 0.3, 300))
}

func BenchmarkAutocorrelation(b *testing.B) {
	x := benchSeries()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Autocorrelation{}.Estimate(x, 30)
	}
}

func BenchmarkWelch(b *testing.B) {
	x := benchSeries()
	fft := NewFFT()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Welch{Fast: fft}.Estimate(x, 30)
	}
}

func BenchmarkWelchDFT(b *testing.B) {
	x := benchSeries()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Welch{Fast: DFT{}}.Estimate(x, 30)
	}
}
