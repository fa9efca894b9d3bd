package motion

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Capture is a completed window: one motion series per tracked point and the
// shared frame timestamps. Series[i] belongs to Points[i] and may be shorter
// than Timestamps because tracking gaps are not interpolated.
type Capture struct {
	ID         uuid.UUID
	Points     []Landmark
	Series     [][]float64
	Timestamps []time.Time
}

// Duration returns the time between the first and last frame.
func (c Capture) Duration() time.Duration {
	if len(c.Timestamps) < 2 {
		return 0
	}
	return c.Timestamps[len(c.Timestamps)-1].Sub(c.Timestamps[0])
}

// SampleRate returns the effective motion sample rate in Hz: the length of
// the longest series divided by the capture duration. A point that was
// never tracked does not lower the rate of the others. It fails with
// ErrInsufficientFrames for fewer than MinFrames frames, a zero duration,
// or when no point produced a single displacement.
func (c Capture) SampleRate() (float64, error) {
	if len(c.Timestamps) < MinFrames {
		return 0, fmt.Errorf("%w: %d < %d", ErrInsufficientFrames, len(c.Timestamps), MinFrames)
	}
	if len(c.Series) == 0 {
		return 0, ErrNoPoints
	}
	seconds := float64(c.Duration().Milliseconds()) / 1000
	if seconds <= 0 {
		return 0, fmt.Errorf("%w: zero duration", ErrInsufficientFrames)
	}
	longest := 0
	for _, x := range c.Series {
		longest = max(longest, len(x))
	}
	if longest == 0 {
		return 0, fmt.Errorf("%w: no tracked motion", ErrInsufficientFrames)
	}
	return float64(longest) / seconds, nil
}
