package recording

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-tremor/dsp/core"
	"github.com/cwbudde/algo-tremor/dsp/signal"
	"github.com/cwbudde/algo-tremor/motion"
)

// SynthConfig describes a synthetic hand recording.
type SynthConfig struct {
	// Frequency of the hand oscillation in Hz. Squared displacement of a
	// sinusoidal position peaks at twice this frequency.
	Frequency float64
	// FrameRate is the nominal camera rate in frames per second.
	FrameRate float64
	// Jitter displaces each frame by up to this fraction of a frame period.
	Jitter float64
	// Duration of the recording. Frames continue slightly past it so that
	// replaying closes the capture window.
	Duration time.Duration
	// Width and Height of the camera frame in pixels. Layout positions are
	// scaled to it.
	Width, Height float64
	// Amplitude of the oscillation in pixels.
	Amplitude float64
	// Noise adds uniform tracker noise of this amplitude to every coordinate.
	Noise  float64
	Points []motion.Landmark
	Seed   int64
}

// DefaultSynthConfig returns a 5 Hz oscillation of the key points at a
// jittered 30 fps for one capture window.
func DefaultSynthConfig() SynthConfig {
	return SynthConfig{
		Frequency: 5,
		FrameRate: core.DefaultSampleRate,
		Jitter:    0.2,
		Duration:  motion.WindowDuration,
		Width:     640,
		Height:    480,
		Amplitude: 6,
		Noise:     0.5,
		Points:    motion.KeyPoints,
		Seed:      1,
	}
}

var errSynthConfig = errors.New("recording: invalid synth config")

// Synthesize builds a recording of every point oscillating around its layout
// position along a diagonal, each with its own phase.
func Synthesize(cfg SynthConfig) (Recording, error) {
	switch {
	case cfg.Frequency <= 0 || math.IsNaN(cfg.Frequency) || math.IsInf(cfg.Frequency, 0):
		return Recording{}, fmt.Errorf("%w: frequency %v", errSynthConfig, cfg.Frequency)
	case cfg.Duration <= 0:
		return Recording{}, fmt.Errorf("%w: duration %v", errSynthConfig, cfg.Duration)
	case cfg.Width <= 0 || cfg.Height <= 0:
		return Recording{}, fmt.Errorf("%w: frame size %vx%v", errSynthConfig, cfg.Width, cfg.Height)
	case cfg.Amplitude < 0 || cfg.Noise < 0:
		return Recording{}, fmt.Errorf("%w: negative amplitude or noise", errSynthConfig)
	case len(cfg.Points) == 0:
		return Recording{}, fmt.Errorf("%w: no points", errSynthConfig)
	}

	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(cfg.FrameRate)},
		signal.WithSeed(cfg.Seed),
	)
	frames := int(math.Ceil(cfg.Duration.Seconds()*g.Config().SampleRate)) + 2
	times, err := g.FrameTimes(frames, cfg.Jitter)
	if err != nil {
		return Recording{}, fmt.Errorf("recording: %w", err)
	}

	rec := Recording{
		Points: make([]int, len(cfg.Points)),
		Frames: make([]Frame, frames),
	}
	for i := range rec.Frames {
		rec.Frames[i] = Frame{
			T:       int64(math.Round(times[i] * 1000)),
			Samples: make([]*Sample, len(cfg.Points)),
		}
	}

	for j, p := range cfg.Points {
		if !p.Valid() {
			return Recording{}, fmt.Errorf("%w: unknown landmark %d", errSynthConfig, int(p))
		}
		rec.Points[j] = int(p)

		wave := signal.SineAt(times, cfg.Frequency, cfg.Amplitude, 0.3*float64(j))
		g.SetSeed(cfg.Seed + 2*int64(j) + 1)
		nx, err := g.WhiteNoise(cfg.Noise, frames)
		if err != nil {
			return Recording{}, fmt.Errorf("recording: %w", err)
		}
		g.SetSeed(cfg.Seed + 2*int64(j) + 2)
		ny, err := g.WhiteNoise(cfg.Noise, frames)
		if err != nil {
			return Recording{}, fmt.Errorf("recording: %w", err)
		}

		bx, by := p.Position()
		bx *= cfg.Width
		by *= cfg.Height
		for i := range rec.Frames {
			rec.Frames[i].Samples[j] = Position(bx+wave[i]+nx[i], by+0.5*wave[i]+ny[i])
		}
	}
	return rec, nil
}
