package tremor

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-tremor/dsp/spectrum"
	"github.com/cwbudde/algo-tremor/motion"
	"github.com/cwbudde/algo-tremor/stats/frequency"
	timestats "github.com/cwbudde/algo-tremor/stats/time"
)

// NoDominantFrequency is reported when no point has a significant peak.
const NoDominantFrequency = "no dominant frequency detected"

// PointResult is the analysis of one tracked point.
type PointResult struct {
	Point   motion.Landmark
	Label   string
	Samples int
	// Motion summarizes the raw motion energy series.
	Motion timestats.Stats

	// Method produced Spectrum; MethodNone when the point was skipped.
	Method   spectrum.Method
	Spectrum spectrum.Spectrum
	// Shape describes Spectrum; zero when the point was skipped.
	Shape frequency.Stats
	Peak  Peak

	Significant bool
	// Skipped explains why the point was not analyzed, nil otherwise.
	Skipped error
	// Failed lists estimation strategies that did not succeed before Method.
	Failed []spectrum.Attempt
}

// Analyzed reports whether a spectrum was estimated for the point.
func (p PointResult) Analyzed() bool {
	return p.Skipped == nil && !p.Spectrum.Empty()
}

// Result is the outcome of analyzing one capture window.
type Result struct {
	SessionID  uuid.UUID
	SampleRate float64
	Points     []PointResult

	// Peaks holds the significant peaks in point order.
	Peaks []Peak
	// Frequency is the power-weighted mean of Peaks, NaN when Peaks is empty.
	Frequency float64
	Class     Class
}

// Detected reports whether a dominant frequency was found.
func (r Result) Detected() bool {
	return len(r.Peaks) > 0 && !math.IsNaN(r.Frequency)
}

// Significant returns the point results that contributed to Peaks.
func (r Result) Significant() []PointResult {
	var out []PointResult
	for _, p := range r.Points {
		if p.Significant {
			out = append(out, p)
		}
	}
	return out
}

// Summary returns a one-line description for display.
func (r Result) Summary() string {
	if !r.Detected() {
		return NoDominantFrequency
	}

	parts := make([]string, len(r.Peaks))
	for i, p := range r.Peaks {
		parts[i] = fmt.Sprintf("%.2f Hz", p.Frequency)
	}
	return fmt.Sprintf("dominant: %s; weighted %.2f Hz (%s)", strings.Join(parts, ", "), r.Frequency, r.Class)
}
