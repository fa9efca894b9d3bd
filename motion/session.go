package motion

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	timestats "github.com/cwbudde/algo-tremor/stats/time"
)

const (
	// WindowDuration is the length of one capture window.
	WindowDuration = 10 * time.Second
	// MinFrames is the fewest frames a window needs to be analyzed.
	MinFrames = 10
)

var (
	ErrNotStarted         = errors.New("motion: session not started")
	ErrWindowClosed       = errors.New("motion: capture window closed")
	ErrPointCount         = errors.New("motion: sample count does not match tracked points")
	ErrTimestampOrder     = errors.New("motion: timestamp before previous frame")
	ErrInsufficientFrames = errors.New("motion: not enough frames captured")
	ErrNoPoints           = errors.New("motion: no tracked points")
)

// Session holds the state of one capture window. It is safe for one
// acquisition goroutine to add frames while another stops the session.
type Session struct {
	mu sync.Mutex

	id     uuid.UUID
	points []Landmark
	window time.Duration

	start   time.Time
	started bool
	closed  bool

	stamps   []time.Time
	series   [][]float64
	prev     []Sample
	activity []timestats.StreamingStats
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithWindow overrides WindowDuration. Non-positive values are ignored.
func WithWindow(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.window = d
		}
	}
}

// NewSession creates a session tracking the given landmarks, in order.
func NewSession(points []Landmark, opts ...SessionOption) (*Session, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	for _, p := range points {
		if !p.Valid() {
			return nil, fmt.Errorf("motion: unknown landmark %d", int(p))
		}
	}

	s := &Session{
		points: append([]Landmark(nil), points...),
		window: WindowDuration,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Start begins a new capture window at t0, discarding all series,
// timestamps and previous samples and assigning a new session ID.
func (s *Session) Start(t0 time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = uuid.New()
	s.start = t0
	s.started = true
	s.closed = false
	s.stamps = s.stamps[:0]
	s.series = make([][]float64, len(s.points))
	s.prev = make([]Sample, len(s.points))
	s.activity = make([]timestats.StreamingStats, len(s.points))
}

// AddFrame records one captured frame. samples must hold one entry per
// tracked point, in the order given to NewSession; use [Missing] for lost
// points. A point that was lost on the previous frame contributes nothing
// this frame. The frame that reaches the window length closes the session
// and is not recorded.
func (s *Session) AddFrame(ts time.Time, samples []Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	if s.closed {
		return ErrWindowClosed
	}
	if len(samples) != len(s.points) {
		return fmt.Errorf("%w: got %d, want %d", ErrPointCount, len(samples), len(s.points))
	}
	if ts.Before(s.start) {
		return fmt.Errorf("%w: %s before window start %s", ErrTimestampOrder, ts.Format(time.RFC3339Nano), s.start.Format(time.RFC3339Nano))
	}
	if n := len(s.stamps); n > 0 && ts.Before(s.stamps[n-1]) {
		return fmt.Errorf("%w: %s < %s", ErrTimestampOrder, ts.Format(time.RFC3339Nano), s.stamps[n-1].Format(time.RFC3339Nano))
	}
	if ts.Sub(s.start) >= s.window {
		s.closed = true
		return ErrWindowClosed
	}

	for i, cur := range samples {
		if v, ok := Displacement(s.prev[i], cur); ok {
			s.series[i] = append(s.series[i], v)
			s.activity[i].Add(v)
		}
		s.prev[i] = cur
	}
	s.stamps = append(s.stamps, ts)
	return nil
}

// Stop closes the window early.
func (s *Session) Stop() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Closed reports whether the window is complete or stopped.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// ID returns the identifier assigned by the last Start.
func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Points returns the tracked landmarks.
func (s *Session) Points() []Landmark {
	return append([]Landmark(nil), s.points...)
}

// Frames returns the number of recorded frames.
func (s *Session) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stamps)
}

// Activity returns running statistics of each point's motion energy, for
// feedback while the window is still open.
func (s *Session) Activity() []timestats.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]timestats.Stats, len(s.activity))
	for i := range s.activity {
		out[i] = s.activity[i].Result()
	}
	return out
}

// Capture returns an immutable copy of the recorded window.
func (s *Session) Capture() Capture {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Capture{
		ID:         s.id,
		Points:     append([]Landmark(nil), s.points...),
		Timestamps: append([]time.Time(nil), s.stamps...),
		Series:     make([][]float64, len(s.series)),
	}
	for i, ser := range s.series {
		c.Series[i] = append([]float64(nil), ser...)
	}
	return c
}
