// Command tremor estimates the dominant tremor frequency of a recorded hand.
//
// Usage:
//
//	tremor [flags] [recording.json]
//
// Without a recording it analyzes a synthesized one whose hand oscillates at
// -synth Hz. Motion energy is squared displacement, so a pure oscillation
// shows up at twice that frequency.
//
// Examples:
//
//	tremor capture.json
//	tremor -synth 2.5 -csv auto -chart tremor.html
//	tremor -config tremor.json -calibrated -workers 4 capture.json
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-tremor/dsp/spectrum"
	"github.com/cwbudde/algo-tremor/dsp/window"
	"github.com/cwbudde/algo-tremor/internal/config"
	"github.com/cwbudde/algo-tremor/internal/recording"
	"github.com/cwbudde/algo-tremor/internal/report"
	"github.com/cwbudde/algo-tremor/measure/tremor"
	"github.com/cwbudde/algo-tremor/motion"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	savePath   string
	flags      config.Config
	set        map[string]bool
	args       []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("tremor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "JSON configuration file")
	fs.StringVar(&o.savePath, "save", "", "write the analyzed recording to this JSON file")
	fs.StringVar(&o.flags.CSVPath, "csv", "", `write significant peaks as CSV to this path ("auto" for tremor_<timestamp>.csv)`)
	fs.StringVar(&o.flags.ChartPath, "chart", "", "write an HTML spectrum and hand map page to this path")
	fs.Float64Var(&o.flags.SynthFrequency, "synth", 5, "hand oscillation frequency in Hz for the synthesized recording")
	fs.Float64Var(&o.flags.FrameRate, "fps", 30, "nominal frame rate of the synthesized recording")
	fs.Int64Var(&o.flags.Seed, "seed", 1, "random seed of the synthesized recording")
	fs.StringVar(&o.flags.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&o.flags.LogJSON, "log-json", false, "log JSON instead of text")
	fs.BoolVar(&o.flags.CalibratedThresholds, "calibrated", false, "use per-method significance thresholds")
	fs.IntVar(&o.flags.Workers, "workers", 1, "points analyzed concurrently")
	fs.StringVar(&o.flags.Window, "window", "hann", "Welch segment window: hann, hamming, blackman or rectangular")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tremor [flags] [recording.json]\n\n")
		fmt.Fprintf(stderr, "Estimates the dominant tremor frequency of a recorded or synthesized hand.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return o, errors.New("at most one recording may be given")
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	o.args = fs.Args()
	return o, nil
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were set explicitly on top of it.
func loadConfig(o options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}

	overrides := map[string]func(){
		"csv":        func() { cfg.CSVPath = o.flags.CSVPath },
		"chart":      func() { cfg.ChartPath = o.flags.ChartPath },
		"synth":      func() { cfg.SynthFrequency = o.flags.SynthFrequency },
		"fps":        func() { cfg.FrameRate = o.flags.FrameRate },
		"seed":       func() { cfg.Seed = o.flags.Seed },
		"log-level":  func() { cfg.LogLevel = o.flags.LogLevel },
		"log-json":   func() { cfg.LogJSON = o.flags.LogJSON },
		"calibrated": func() { cfg.CalibratedThresholds = o.flags.CalibratedThresholds },
		"workers":    func() { cfg.Workers = o.flags.Workers },
		"window":     func() { cfg.Window = o.flags.Window },
	}
	for name, apply := range overrides {
		if o.set[name] {
			apply()
		}
	}
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, level slog.Leveler, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(o)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	level, _ := cfg.Level()
	logger := newLogger(stderr, level, cfg.LogJSON)

	rec, err := source(o.args, cfg, logger)
	if err != nil {
		logger.Error("no recording", "err", err)
		return 1
	}
	if o.savePath != "" {
		if err := recording.Save(o.savePath, rec); err != nil {
			logger.Error("saving recording failed", "path", o.savePath, "err", err)
			return 1
		}
	}

	res, at, err := analyze(rec, cfg, logger)
	if err != nil {
		logger.Error("analysis failed", "err", err)
		return 1
	}

	if err := printResult(stdout, res); err != nil {
		logger.Error("writing result failed", "err", err)
		return 1
	}
	if err := export(res, at, cfg, logger); err != nil {
		logger.Error("export failed", "err", err)
		return 1
	}
	return 0
}

func source(args []string, cfg *config.Config, logger *slog.Logger) (recording.Recording, error) {
	if len(args) == 1 {
		logger.Debug("loading recording", "path", args[0])
		return recording.Load(args[0])
	}

	points, err := cfg.Landmarks()
	if err != nil {
		return recording.Recording{}, err
	}
	sc := recording.DefaultSynthConfig()
	sc.Frequency = cfg.SynthFrequency
	sc.FrameRate = cfg.FrameRate
	sc.Jitter = cfg.Jitter
	sc.Seed = cfg.Seed
	sc.Points = points
	logger.Info("synthesizing recording", "hz", sc.Frequency, "fps", sc.FrameRate, "points", len(points))
	return recording.Synthesize(sc)
}

// analyze replays rec into a capture session and analyzes the window. It
// returns the time the window ended.
func analyze(rec recording.Recording, cfg *config.Config, logger *slog.Logger) (tremor.Result, time.Time, error) {
	points, err := rec.Landmarks()
	if err != nil {
		return tremor.Result{}, time.Time{}, err
	}
	session, err := motion.NewSession(points)
	if err != nil {
		return tremor.Result{}, time.Time{}, err
	}

	start := time.Now()
	frames, err := recording.Replay(rec, session, start)
	if err != nil {
		return tremor.Result{}, time.Time{}, err
	}
	capture := session.Capture()
	logger.Debug("capture complete", "session", capture.ID, "frames", frames, "duration", capture.Duration())

	wt, err := cfg.WindowType()
	if err != nil {
		return tremor.Result{}, time.Time{}, err
	}
	welch := spectrum.Welch{Window: wt}
	logWindow(logger, welch, capture)

	opts := []tremor.Option{
		tremor.WithLogger(logger),
		tremor.WithWorkers(cfg.Workers),
		tremor.WithStrategies(spectrum.Autocorrelation{}, welch, spectrum.Synthetic{}),
	}
	if cfg.CalibratedThresholds {
		opts = append(opts, tremor.WithCalibratedThresholds())
	}
	res, err := tremor.NewAnalyzer(opts...).Analyze(capture)
	return res, start.Add(capture.Duration()), err
}

// logWindow reports the Welch taper for the longest series in c, the way
// wininfo describes a window.
func logWindow(logger *slog.Logger, welch spectrum.Welch, c motion.Capture) {
	longest := 0
	for _, x := range c.Series {
		longest = max(longest, len(x))
	}
	attrs := []any{"window", welch.Window.String()}
	if segLen := welch.SegmentLength(longest); segLen > 0 {
		taper := window.Generate(welch.Window, segLen)
		enbw := window.EquivalentNoiseBandwidth(taper)
		attrs = append(attrs, "segment", segLen, "coherent_gain", window.CoherentGain(taper), "enbw_bins", enbw)
		if fs, err := c.SampleRate(); err == nil {
			attrs = append(attrs, "resolution_hz", enbw*fs/float64(segLen))
		}
	}
	logger.Debug("welch window", attrs...)
}

func printResult(w io.Writer, res tremor.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Point\tLabel\tSamples\tMethod\tPeak [Hz]\tPower\tCentroid [Hz]\tSignificant\n")
	fmt.Fprintf(tw, "-----\t-----\t-------\t------\t---------\t-----\t-------------\t-----------\n")
	for _, p := range res.Points {
		if p.Skipped != nil {
			fmt.Fprintf(tw, "%d\t%s\t%d\t-\t-\t-\t-\tskipped: %v\n", int(p.Point), p.Label, p.Samples, p.Skipped)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%.2f\t%.4f\t%.2f\t%t\n",
			int(p.Point), p.Label, p.Samples, p.Method, p.Peak.Frequency, p.Peak.Power, p.Shape.Centroid, p.Significant)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", res.Summary())
	return err
}

func export(res tremor.Result, at time.Time, cfg *config.Config, logger *slog.Logger) error {
	if path := cfg.CSVPath; path != "" {
		if path == "auto" {
			path = report.FileName(at)
		}
		if err := writeFile(path, func(w io.Writer) error { return report.WriteCSV(w, res, at) }); err != nil {
			return err
		}
		logger.Info("csv written", "path", path, "rows", len(res.Peaks))
	}
	if path := cfg.ChartPath; path != "" {
		if err := writeFile(path, func(w io.Writer) error { return report.RenderHTML(w, res) }); err != nil {
			return err
		}
		logger.Info("chart written", "path", path)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
