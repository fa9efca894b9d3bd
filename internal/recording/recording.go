// Package recording reads, writes and synthesizes recorded landmark streams
// and replays them into a capture session in place of a live tracker.
package recording

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cwbudde/algo-tremor/motion"
)

// MaxFileSize bounds recordings read by Load.
const MaxFileSize = 64 << 20

var (
	ErrNoFrames     = errors.New("recording: no frames")
	ErrFrameSize    = errors.New("recording: frame sample count does not match points")
	ErrBadSample    = errors.New("recording: sample needs x and y, or luma")
	ErrPointsDiffer = errors.New("recording: session tracks different points")
)

// Sample is one point in one frame. A position sample sets X and Y, an
// intensity sample sets only Luma.
type Sample struct {
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Luma *float64 `json:"luma,omitempty"`
}

// Position returns a position sample.
func Position(x, y float64) *Sample { return &Sample{X: &x, Y: &y} }

// Luma returns an intensity sample.
func Luma(v float64) *Sample { return &Sample{Luma: &v} }

func (s *Sample) motion() (motion.Sample, error) {
	switch {
	case s == nil:
		return motion.Missing(), nil
	case s.X != nil && s.Y != nil && s.Luma == nil:
		return motion.At(*s.X, *s.Y), nil
	case s.X == nil && s.Y == nil && s.Luma != nil:
		return motion.Luminance(*s.Luma), nil
	default:
		return motion.Sample{}, ErrBadSample
	}
}

// Frame is one tracker output. T is milliseconds since the recording start;
// a nil sample marks a lost point.
type Frame struct {
	T       int64     `json:"t"`
	Samples []*Sample `json:"samples"`
}

// Recording is a sequence of frames for a fixed list of landmark indices.
type Recording struct {
	Points []int   `json:"points"`
	Frames []Frame `json:"frames"`
}

// Landmarks returns the tracked points.
func (r Recording) Landmarks() ([]motion.Landmark, error) {
	return motion.ParseLandmarks(r.Points)
}

// Validate checks the point list and that every frame has one well-formed
// sample per point.
func (r Recording) Validate() error {
	points, err := r.Landmarks()
	if err != nil {
		return fmt.Errorf("recording: %w", err)
	}
	if len(points) == 0 {
		return fmt.Errorf("recording: %w", motion.ErrNoPoints)
	}
	if len(r.Frames) == 0 {
		return ErrNoFrames
	}
	for i, f := range r.Frames {
		if len(f.Samples) != len(r.Points) {
			return fmt.Errorf("%w: frame %d has %d, want %d", ErrFrameSize, i, len(f.Samples), len(r.Points))
		}
		for j, s := range f.Samples {
			if _, err := s.motion(); err != nil {
				return fmt.Errorf("frame %d point %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// Decode reads and validates a JSON recording.
func Decode(r io.Reader) (Recording, error) {
	var rec Recording
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return Recording{}, fmt.Errorf("recording: decode: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return Recording{}, err
	}
	return rec, nil
}

// Load reads a recording file.
func Load(path string) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("recording: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Recording{}, fmt.Errorf("recording: %w", err)
	}
	if info.Size() > MaxFileSize {
		return Recording{}, fmt.Errorf("recording: %s is %d bytes, limit %d", path, info.Size(), MaxFileSize)
	}
	return Decode(f)
}

// Encode writes rec as indented JSON.
func Encode(w io.Writer, rec Recording) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("recording: encode: %w", err)
	}
	return nil
}

// Save writes rec to path.
func Save(path string, rec Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("recording: %w", err)
	}
	if err := Encode(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Replay starts s at start and feeds it the recorded frames until the
// recording ends or the window closes, then stops the session. It returns
// the number of frames the session accepted.
func Replay(rec Recording, s *motion.Session, start time.Time) (int, error) {
	points, err := rec.Landmarks()
	if err != nil {
		return 0, fmt.Errorf("recording: %w", err)
	}
	if !samePoints(points, s.Points()) {
		return 0, ErrPointsDiffer
	}

	s.Start(start)
	defer s.Stop()

	fed := 0
	samples := make([]motion.Sample, len(points))
	for i, f := range rec.Frames {
		if len(f.Samples) != len(points) {
			return fed, fmt.Errorf("%w: frame %d", ErrFrameSize, i)
		}
		for j, rs := range f.Samples {
			if samples[j], err = rs.motion(); err != nil {
				return fed, fmt.Errorf("frame %d point %d: %w", i, j, err)
			}
		}

		err := s.AddFrame(start.Add(time.Duration(f.T)*time.Millisecond), samples)
		if errors.Is(err, motion.ErrWindowClosed) {
			break
		}
		if err != nil {
			return fed, fmt.Errorf("recording: frame %d: %w", i, err)
		}
		fed++
	}
	return fed, nil
}

func samePoints(a, b []motion.Landmark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
