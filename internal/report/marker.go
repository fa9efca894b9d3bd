package report

import (
	"fmt"

	"github.com/cwbudde/algo-tremor/dsp/core"
)

// Hand map marker geometry.
const (
	MinRadius   = 5.0
	RadiusRange = 25.0
	MaxHue      = 240.0
	HuePerHz    = 20.0
)

// Marker is the hand map glyph for one point.
type Marker struct {
	Radius float64
	Hue    float64
}

// MarkerFor sizes a marker by amplitude relative to the strongest point and
// colors it from blue (slow) to red (fast). A non-positive maxAmp gives the
// minimum radius.
func MarkerFor(freq, amp, maxAmp float64) Marker {
	r := MinRadius
	if maxAmp > 0 {
		r += RadiusRange * amp / maxAmp
	}
	return Marker{
		Radius: r,
		Hue:    core.Clamp(MaxHue-HuePerHz*freq, 0, MaxHue),
	}
}

// Color returns the marker color as a CSS hsl() value.
func (m Marker) Color() string {
	return fmt.Sprintf("hsl(%.0f, 100%%, 50%%)", m.Hue)
}
