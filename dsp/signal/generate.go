// Package signal generates deterministic motion signals and frame clocks for
// demos and tests.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

// MaxJitter bounds the frame jitter fraction so timestamps stay increasing.
const MaxJitter = 0.45

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise and jitter generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := NewGenerator(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed changes the seed used by subsequent noise and jitter calls.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Seed returns the current seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Sine generates amplitude*sin(2*pi*f*n/fs + phase) on the uniform sample grid.
func (g *Generator) Sine(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	times := make([]float64, samples)
	for i := range times {
		times[i] = float64(i) / g.cfg.SampleRate
	}
	return SineAt(times, freqHz, amplitude, phase), nil
}

// SineAt evaluates amplitude*sin(2*pi*f*t + phase) at arbitrary times in seconds.
func SineAt(times []float64, freqHz, amplitude, phase float64) []float64 {
	out := make([]float64, len(times))
	w := 2 * math.Pi * freqHz
	for i, t := range times {
		out[i] = amplitude * math.Sin(w*t+phase)
	}
	return out
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// FrameTimes returns capture times in seconds for frames at the configured
// rate. Each frame is displaced by up to jitter frame periods, which models a
// camera that does not deliver frames on an exact clock. jitter must lie in
// [0, MaxJitter]; the first frame is always at 0.
func (g *Generator) FrameTimes(frames int, jitter float64) ([]float64, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frame count must be > 0: %d", frames)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("frame rate must be > 0: %f", g.cfg.SampleRate)
	}
	if jitter < 0 || jitter > MaxJitter || math.IsNaN(jitter) {
		return nil, fmt.Errorf("frame jitter must be in [0, %.2f]: %f", MaxJitter, jitter)
	}

	period := 1 / g.cfg.SampleRate
	out := make([]float64, frames)
	rng := rand.New(rand.NewSource(g.seed))
	for i := 1; i < frames; i++ {
		out[i] = (float64(i) + (rng.Float64()*2-1)*jitter) * period
	}
	return out, nil
}
