package tremor

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-tremor/dsp/spectrum"
	"github.com/cwbudde/algo-tremor/internal/testutil"
	"github.com/cwbudde/algo-tremor/motion"
)

var start = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// makeCapture builds a capture with frames timestamps stepMs apart and one
// key point per series.
func makeCapture(frames, stepMs int, series ...[]float64) motion.Capture {
	c := motion.Capture{
		ID:         uuid.New(),
		Points:     append([]motion.Landmark(nil), motion.KeyPoints[:len(series)]...),
		Series:     series,
		Timestamps: make([]time.Time, frames),
	}
	for i := range c.Timestamps {
		c.Timestamps[i] = start.Add(time.Duration(i*stepMs) * time.Millisecond)
	}
	return c
}

func TestAnalyzeWelchFrequency(t *testing.T) {
	// 251 frames at 40 ms: 10 s and 250 samples, so fs = 25 Hz.
	x := testutil.TremorSine(6, 25, 1, 2, 250)
	a := NewAnalyzer(WithStrategies(spectrum.Welch{}, spectrum.Synthetic{}))

	res, err := a.Analyze(makeCapture(251, 40, x))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if math.Abs(res.SampleRate-25) > 1e-12 {
		t.Fatalf("SampleRate = %v, want 25", res.SampleRate)
	}
	if !res.Detected() {
		t.Fatalf("no tremor detected: %+v", res.Points[0])
	}
	if res.Points[0].Method != spectrum.MethodWelch {
		t.Fatalf("method = %v, want welch", res.Points[0].Method)
	}
	if math.Abs(res.Frequency-6) > 25.0/128 {
		t.Fatalf("Frequency = %v, want 6 within one bin", res.Frequency)
	}
	if res.Class != ClassEssential {
		t.Fatalf("Class = %v, want essential", res.Class)
	}

	p := res.Points[0]
	if p.Motion.Length != 250 || math.Abs(p.Motion.Mean-2) > 0.05 {
		t.Fatalf("motion stats = %+v", p.Motion)
	}
	if p.Shape.Bins != p.Spectrum.Len() || math.Abs(p.Shape.Centroid-6) > 0.5 {
		t.Fatalf("shape = %+v", p.Shape)
	}
}

func TestAnalyzePrefersAutocorrelation(t *testing.T) {
	x := testutil.TremorSine(4.3, 25, 1, 0, 250)
	res, err := NewAnalyzer().Analyze(makeCapture(251, 40, x))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	p := res.Points[0]
	if p.Method != spectrum.MethodAutocorrelation {
		t.Fatalf("method = %v, want autocorrelation", p.Method)
	}
	if !p.Significant || !p.Analyzed() {
		t.Fatalf("point not significant: %+v", p.Peak)
	}
	if err := p.Spectrum.Validate(); err != nil {
		t.Fatalf("invalid spectrum: %v", err)
	}
}

func TestAnalyzeContainsPointFailures(t *testing.T) {
	long := testutil.TremorSine(6, 25, 1, 2, 250)
	res, err := NewAnalyzer(WithStrategies(spectrum.Welch{}, spectrum.Synthetic{})).
		Analyze(makeCapture(251, 40, long, make([]float64, 20), nil))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(res.Points) != 3 {
		t.Fatalf("points = %d, want 3", len(res.Points))
	}
	for _, i := range []int{1, 2} {
		p := res.Points[i]
		if !errors.Is(p.Skipped, spectrum.ErrTooShort) || p.Analyzed() || p.Significant {
			t.Fatalf("point %d: skipped=%v analyzed=%v significant=%v", i, p.Skipped, p.Analyzed(), p.Significant)
		}
		if !p.Peak.IsZero() {
			t.Fatalf("point %d: peak = %+v, want zero", i, p.Peak)
		}
	}
	if len(res.Peaks) != 1 || !res.Detected() {
		t.Fatalf("peaks = %v, want one", res.Peaks)
	}
}

func TestAnalyzeSilenceUsesSyntheticFallback(t *testing.T) {
	c := makeCapture(251, 40, make([]float64, 250))

	res, err := NewAnalyzer().Analyze(c)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	p := res.Points[0]
	if p.Method != spectrum.MethodSynthetic {
		t.Fatalf("method = %v, want synthetic", p.Method)
	}
	if p.Peak.Frequency != 5 || p.Peak.Power != 1 {
		t.Fatalf("peak = %+v, want 5 Hz / 1", p.Peak)
	}
	if len(p.Failed) != 2 {
		t.Fatalf("failed = %+v, want autocorrelation and welch", p.Failed)
	}

	cal, err := NewAnalyzer(WithCalibratedThresholds()).Analyze(c)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if cal.Detected() {
		t.Fatalf("calibrated analysis detected %v Hz from the placeholder", cal.Frequency)
	}
	if cal.Summary() != NoDominantFrequency {
		t.Fatalf("Summary() = %q", cal.Summary())
	}
	if cal.Class != ClassNone || !math.IsNaN(cal.Frequency) {
		t.Fatalf("class=%v freq=%v, want none/NaN", cal.Class, cal.Frequency)
	}
}

func TestAnalyzeInsufficientFrames(t *testing.T) {
	_, err := NewAnalyzer().Analyze(makeCapture(motion.MinFrames-1, 40, make([]float64, 8)))
	if !errors.Is(err, motion.ErrInsufficientFrames) {
		t.Fatalf("error = %v, want ErrInsufficientFrames", err)
	}
}

func TestAnalyzeUntrackedFirstPoint(t *testing.T) {
	// The wrist was never tracked; the index tip carries a 4.3 Hz motion.
	res, err := NewAnalyzer().Analyze(makeCapture(251, 40, nil, testutil.TremorSine(4.3, 25, 1, 2, 250)))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if math.Abs(res.SampleRate-25) > 1e-12 {
		t.Fatalf("SampleRate = %v, want 25", res.SampleRate)
	}
	if res.Points[0].Significant {
		t.Fatalf("untracked point reported: %+v", res.Points[0])
	}
	tip := res.Points[1]
	if tip.Method == spectrum.MethodSynthetic || !tip.Significant {
		t.Fatalf("index tip method = %v, significant = %v", tip.Method, tip.Significant)
	}
	if math.Abs(res.Frequency-4.3) > 0.3 {
		t.Fatalf("Frequency = %v, want about 4.3", res.Frequency)
	}
}

func TestAnalyzeNothingTracked(t *testing.T) {
	_, err := NewAnalyzer().Analyze(makeCapture(251, 40, nil, nil))
	if !errors.Is(err, motion.ErrInsufficientFrames) {
		t.Fatalf("error = %v, want ErrInsufficientFrames", err)
	}
}

func TestAnalyzeWorkersMatchSequential(t *testing.T) {
	c := makeCapture(251, 40,
		testutil.TremorSine(3.1, 25, 1, 1, 250),
		testutil.TremorSine(5.2, 25, 0.5, 1, 250),
		testutil.Add(testutil.TremorSine(8.4, 25, 1, 0, 250), testutil.DeterministicNoise(3, 0.4, 250)),
		make([]float64, 250),
		make([]float64, 10),
	)

	seq, err := NewAnalyzer().Analyze(c)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	par, err := NewAnalyzer(WithWorkers(3)).Analyze(c)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(seq.Peaks) != len(par.Peaks) {
		t.Fatalf("peaks: sequential %d, parallel %d", len(seq.Peaks), len(par.Peaks))
	}
	for i := range seq.Peaks {
		if seq.Peaks[i] != par.Peaks[i] {
			t.Fatalf("peak %d: sequential %+v, parallel %+v", i, seq.Peaks[i], par.Peaks[i])
		}
	}
	for i := range seq.Points {
		if seq.Points[i].Point != par.Points[i].Point || seq.Points[i].Method != par.Points[i].Method {
			t.Fatalf("point %d differs between sequential and parallel runs", i)
		}
	}
	if seq.Frequency != par.Frequency {
		t.Fatalf("frequency: sequential %v, parallel %v", seq.Frequency, par.Frequency)
	}
}

func TestAnalyzeLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := makeCapture(251, 40, make([]float64, 250), make([]float64, 5))
	if _, err := NewAnalyzer(WithLogger(logger)).Analyze(c); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"point analyzed", "point skipped", "analysis complete", "method=synthetic", c.ID.String()} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestResultSummary(t *testing.T) {
	r := Result{
		Peaks:     []Peak{{Frequency: 3, Power: 0.5}, {Frequency: 5, Power: 0.3}},
		Frequency: 3.75,
		Class:     ClassResting,
	}
	want := "dominant: 3.00 Hz, 5.00 Hz; weighted 3.75 Hz (resting (parkinsonian-type))"
	if got := r.Summary(); got != want {
		t.Fatalf("Summary() = %q, want %q", got, want)
	}
	if got := (Result{Frequency: math.NaN()}).Summary(); got != NoDominantFrequency {
		t.Fatalf("Summary() = %q, want %q", got, NoDominantFrequency)
	}
}
