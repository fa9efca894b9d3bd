package tremor

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tremor/dsp/spectrum"
)

func TestFindPeak(t *testing.T) {
	tests := []struct {
		name string
		s    spectrum.Spectrum
		want Peak
	}{
		{name: "empty", s: spectrum.Spectrum{}, want: Peak{}},
		{
			name: "single maximum",
			s:    spectrum.Spectrum{Freqs: []float64{1, 2, 3, 4}, Power: []float64{0.1, 0.7, 0.2, 0.3}},
			want: Peak{Frequency: 2, Power: 0.7},
		},
		{
			name: "tie keeps lowest frequency",
			s:    spectrum.Spectrum{Freqs: []float64{1, 2, 3}, Power: []float64{0.5, 0.2, 0.5}},
			want: Peak{Frequency: 1, Power: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindPeak(tt.s); got != tt.want {
				t.Fatalf("FindPeak() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPeakIsZero(t *testing.T) {
	if !(Peak{}).IsZero() {
		t.Fatal("zero peak not reported as zero")
	}
	if (Peak{Frequency: 3}).IsZero() {
		t.Fatal("non-zero peak reported as zero")
	}
}

func TestThresholdsSignificant(t *testing.T) {
	def := DefaultThresholds()
	if def.Significant(spectrum.MethodWelch, Peak{Frequency: 5, Power: 0.1}) {
		t.Fatal("threshold must be strict")
	}
	if !def.Significant(spectrum.MethodWelch, Peak{Frequency: 5, Power: 0.1001}) {
		t.Fatal("peak above threshold rejected")
	}
	if !def.Significant(spectrum.MethodSynthetic, Peak{Frequency: 5, Power: 1}) {
		t.Fatal("default thresholds accept the synthetic peak")
	}
	if def.Significant(spectrum.MethodNone, Peak{Frequency: 5, Power: 1}) {
		t.Fatal("MethodNone can never be significant")
	}
	if (Thresholds{}).Significant(spectrum.MethodWelch, Peak{Frequency: 5, Power: 0.05}) {
		t.Fatal("missing entry must fall back to SignificanceThreshold")
	}

	cal := CalibratedThresholds()
	if cal.Significant(spectrum.MethodSynthetic, Peak{Frequency: 5, Power: 1}) {
		t.Fatal("calibrated thresholds must reject the synthetic peak")
	}
	if cal.Significant(spectrum.MethodAutocorrelation, Peak{Frequency: 5, Power: 0.25}) {
		t.Fatal("weak periodicity accepted")
	}
	if !math.IsInf(cal[spectrum.MethodSynthetic], 1) {
		t.Fatalf("synthetic threshold = %v, want +Inf", cal[spectrum.MethodSynthetic])
	}
}
