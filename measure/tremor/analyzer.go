package tremor

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cwbudde/algo-tremor/dsp/detrend"
	"github.com/cwbudde/algo-tremor/dsp/spectrum"
	"github.com/cwbudde/algo-tremor/motion"
	"github.com/cwbudde/algo-tremor/stats/frequency"
	timestats "github.com/cwbudde/algo-tremor/stats/time"
)

// Analyzer runs the per-point pipeline and the aggregation. With the default
// strategies an Analyzer is safe for concurrent use.
type Analyzer struct {
	estimator  *spectrum.Estimator
	thresholds Thresholds
	logger     *slog.Logger
	workers    int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithThresholds sets per-method significance thresholds.
func WithThresholds(t Thresholds) Option {
	return func(a *Analyzer) {
		if t != nil {
			a.thresholds = t
		}
	}
}

// WithCalibratedThresholds is shorthand for WithThresholds(CalibratedThresholds()).
func WithCalibratedThresholds() Option {
	return WithThresholds(CalibratedThresholds())
}

// WithStrategies replaces the spectral estimation order. Strategies that
// keep state, such as a Welch with a shared FFT, must not be combined with
// WithWorkers.
func WithStrategies(strategies ...spectrum.Strategy) Option {
	return func(a *Analyzer) {
		a.estimator = spectrum.NewEstimator(spectrum.WithStrategies(strategies...))
	}
}

// WithWorkers analyzes up to n points concurrently. Results do not depend on n.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// NewAnalyzer returns an Analyzer with the default estimator, thresholds of
// SignificanceThreshold and sequential processing.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		estimator:  spectrum.NewEstimator(),
		thresholds: DefaultThresholds(),
		logger:     slog.New(slog.DiscardHandler),
		workers:    1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Analyze processes a completed capture. The only error is a window-level
// precondition failure (too few frames); per-point problems are reported in
// the corresponding PointResult.
func (a *Analyzer) Analyze(c motion.Capture) (Result, error) {
	fs, err := c.SampleRate()
	if err != nil {
		a.logger.Warn("capture not analyzed", "session", c.ID, "frames", len(c.Timestamps), "err", err)
		return Result{}, fmt.Errorf("tremor: %w", err)
	}

	log := a.logger.With("session", c.ID)
	log.Debug("analyzing capture", "fs", fs, "frames", len(c.Timestamps), "points", len(c.Points))

	points := a.analyzePoints(c, fs, log)

	res := Result{
		SessionID:  c.ID,
		SampleRate: fs,
		Points:     points,
	}
	for _, p := range points {
		if p.Significant {
			res.Peaks = append(res.Peaks, p.Peak)
		}
	}
	res.Frequency = Aggregate(res.Peaks)
	res.Class = Classify(res.Frequency)

	if res.Detected() {
		log.Info("analysis complete", "fs", fs, "significant", len(res.Peaks), "frequency", res.Frequency, "class", res.Class.String())
	} else {
		log.Info("analysis complete", "fs", fs, "significant", 0, "result", NoDominantFrequency)
	}
	return res, nil
}

func (a *Analyzer) analyzePoints(c motion.Capture, fs float64, log *slog.Logger) []PointResult {
	out := make([]PointResult, len(c.Points))

	if a.workers <= 1 {
		for i := range c.Points {
			out[i] = a.AnalyzePoint(c.Points[i], series(c, i), fs, log)
		}
		return out
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, a.workers)
	for i := range c.Points {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = a.AnalyzePoint(c.Points[i], series(c, i), fs, log)
		}(i)
	}
	wg.Wait()
	return out
}

func series(c motion.Capture, i int) []float64 {
	if i < len(c.Series) {
		return c.Series[i]
	}
	return nil
}

// AnalyzePoint detrends one motion series, estimates its spectrum and
// extracts the dominant peak. A nil logger is allowed.
func (a *Analyzer) AnalyzePoint(point motion.Landmark, x []float64, fs float64, log *slog.Logger) PointResult {
	if log == nil {
		log = a.logger
	}
	pr := PointResult{
		Point:   point,
		Label:   point.Label(),
		Samples: len(x),
		Motion:  timestats.Calculate(x),
	}

	if len(x) < spectrum.MinSamples {
		pr.Skipped = fmt.Errorf("%w: %d < %d samples", spectrum.ErrTooShort, len(x), spectrum.MinSamples)
		log.Warn("point skipped", "point", int(point), "label", pr.Label, "samples", len(x), "reason", pr.Skipped)
		return pr
	}

	est := a.estimator.Estimate(detrend.Detrend(x), fs)
	pr.Method = est.Method
	pr.Spectrum = est.Spectrum
	pr.Failed = est.Failed
	for _, f := range est.Failed {
		log.Debug("estimation strategy failed", "point", int(point), "method", f.Method.String(), "err", f.Err)
	}

	if est.Spectrum.Empty() {
		pr.Skipped = fmt.Errorf("%w: all strategies failed", spectrum.ErrNoPower)
		log.Warn("point skipped", "point", int(point), "label", pr.Label, "samples", len(x), "reason", pr.Skipped)
		return pr
	}

	pr.Shape = frequency.Calculate(est.Spectrum.Freqs, est.Spectrum.Power)
	pr.Peak = FindPeak(est.Spectrum)
	pr.Significant = a.thresholds.Significant(est.Method, pr.Peak)

	log.Debug("point analyzed",
		"point", int(point),
		"label", pr.Label,
		"samples", len(x),
		"method", est.Method.String(),
		"peak_hz", pr.Peak.Frequency,
		"power", pr.Peak.Power,
		"significant", pr.Significant,
		"centroid_hz", pr.Shape.Centroid,
		"flatness", pr.Shape.Flatness,
	)
	return pr
}
