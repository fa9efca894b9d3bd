// Package config holds the runtime configuration of the tremor command.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-tremor/dsp/core"
	"github.com/cwbudde/algo-tremor/dsp/signal"
	"github.com/cwbudde/algo-tremor/dsp/window"
	"github.com/cwbudde/algo-tremor/motion"
)

// MaxFileSize bounds configuration files read by Load.
const MaxFileSize = 1 << 20

var ErrInvalid = errors.New("config: invalid configuration")

// Config holds runtime configuration loaded from a JSON file and overridden
// by command-line flags.
type Config struct {
	LogLevel string `json:"log_level"`
	LogJSON  bool   `json:"log_json"`

	// Points are the landmark indices to analyze, in output order.
	Points  []int `json:"points"`
	Workers int   `json:"workers"`
	// CalibratedThresholds selects per-method significance thresholds that
	// never accept the synthetic placeholder spectrum.
	CalibratedThresholds bool `json:"calibrated_thresholds"`
	// Window is the Welch segment taper.
	Window string `json:"window"`

	CSVPath   string `json:"csv_path"`
	ChartPath string `json:"chart_path"`

	// Synthetic recording parameters, used when no recording is given.
	SynthFrequency float64 `json:"synth_frequency"`
	FrameRate      float64 `json:"frame_rate"`
	Jitter         float64 `json:"jitter"`
	Seed           int64   `json:"seed"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	points := make([]int, len(motion.KeyPoints))
	for i, p := range motion.KeyPoints {
		points[i] = int(p)
	}
	return &Config{
		LogLevel:       "info",
		Points:         points,
		Workers:        1,
		Window:         window.TypeHann.String(),
		SynthFrequency: 5,
		FrameRate:      core.DefaultSampleRate,
		Jitter:         0.2,
		Seed:           1,
	}
}

// Load reads a JSON configuration file over the defaults and validates it.
func Load(path string) (*Config, error) {
	clean := filepath.Clean(path)
	if ext := filepath.Ext(clean); ext != ".json" {
		return nil, fmt.Errorf("config: file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("config: file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", clean, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the command cannot run with.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if len(c.Points) == 0 {
		return fmt.Errorf("%w: no points", ErrInvalid)
	}
	if _, err := c.Landmarks(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.WindowType(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalid, c.Workers)
	}
	if c.SynthFrequency <= 0 {
		return fmt.Errorf("%w: synth_frequency must be > 0, got %v", ErrInvalid, c.SynthFrequency)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame_rate must be > 0, got %v", ErrInvalid, c.FrameRate)
	}
	if c.Jitter < 0 || c.Jitter > signal.MaxJitter {
		return fmt.Errorf("%w: jitter must be in [0, %v], got %v", ErrInvalid, signal.MaxJitter, c.Jitter)
	}
	return nil
}

// Landmarks returns the configured points.
func (c *Config) Landmarks() ([]motion.Landmark, error) {
	return motion.ParseLandmarks(c.Points)
}

// WindowType parses Window.
func (c *Config) WindowType() (window.Type, error) {
	return window.ParseType(c.Window)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}
