package motion

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time { return t0.Add(time.Duration(n) * time.Millisecond) }

func newStarted(t *testing.T, points ...Landmark) *Session {
	t.Helper()
	s, err := NewSession(points)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	s.Start(t0)
	return s
}

func TestSessionAppendsDisplacements(t *testing.T) {
	s := newStarted(t, Wrist, IndexTip)

	frames := [][]Sample{
		{At(0, 0), At(1, 1)},
		{At(3, 4), Missing()},
		{At(3, 4), At(2, 2)},
		{At(4, 4), At(2, 3)},
	}
	for i, f := range frames {
		if err := s.AddFrame(ms(33*i), f); err != nil {
			t.Fatalf("AddFrame(%d) error = %v", i, err)
		}
	}

	c := s.Capture()
	if len(c.Timestamps) != 4 {
		t.Fatalf("timestamps = %d, want 4", len(c.Timestamps))
	}
	wantWrist := []float64{25, 0, 1}
	wantIndex := []float64{1} // gap after frame 1, then (2,2)->(2,3)
	if !equal(c.Series[0], wantWrist) {
		t.Fatalf("wrist series = %v, want %v", c.Series[0], wantWrist)
	}
	if !equal(c.Series[1], wantIndex) {
		t.Fatalf("index series = %v, want %v", c.Series[1], wantIndex)
	}

	act := s.Activity()
	if act[0].Length != 3 || act[0].Max != 25 || math.Abs(act[0].Mean-26.0/3) > 1e-12 {
		t.Fatalf("wrist activity = %+v", act[0])
	}
	if act[1].Length != 1 || act[1].Energy != 1 {
		t.Fatalf("index activity = %+v", act[1])
	}
}

func TestSessionStartResets(t *testing.T) {
	s := newStarted(t, Wrist)
	_ = s.AddFrame(ms(0), []Sample{At(0, 0)})
	_ = s.AddFrame(ms(30), []Sample{At(1, 0)})
	first := s.ID()

	s.Start(ms(100))
	if s.Frames() != 0 {
		t.Fatalf("frames after restart = %d, want 0", s.Frames())
	}
	if s.ID() == first || s.ID() == uuid.Nil {
		t.Fatal("restart must assign a new session ID")
	}
	// The previous-sample cache is gone: the first frame after restart emits nothing.
	if err := s.AddFrame(ms(130), []Sample{At(5, 5)}); err != nil {
		t.Fatalf("AddFrame() error = %v", err)
	}
	if got := s.Capture().Series[0]; len(got) != 0 {
		t.Fatalf("series after restart = %v, want empty", got)
	}
}

func TestSessionWindowCloses(t *testing.T) {
	s, err := NewSession([]Landmark{Wrist}, WithWindow(time.Second))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	s.Start(t0)

	if err := s.AddFrame(ms(999), []Sample{At(0, 0)}); err != nil {
		t.Fatalf("AddFrame() error = %v", err)
	}
	if err := s.AddFrame(ms(1000), []Sample{At(1, 0)}); !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("error = %v, want ErrWindowClosed", err)
	}
	if !s.Closed() || s.Frames() != 1 {
		t.Fatalf("closed=%v frames=%d, want closed with 1 frame", s.Closed(), s.Frames())
	}
}

func TestSessionErrors(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, ErrNoPoints) {
		t.Fatalf("error = %v, want ErrNoPoints", err)
	}
	if _, err := NewSession([]Landmark{99}); err == nil {
		t.Fatal("expected error for unknown landmark")
	}

	s, _ := NewSession([]Landmark{Wrist})
	if err := s.AddFrame(t0, []Sample{At(0, 0)}); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("error = %v, want ErrNotStarted", err)
	}

	s.Start(t0)
	if err := s.AddFrame(t0, nil); !errors.Is(err, ErrPointCount) {
		t.Fatalf("error = %v, want ErrPointCount", err)
	}
	_ = s.AddFrame(ms(50), []Sample{At(0, 0)})
	if err := s.AddFrame(ms(40), []Sample{At(0, 0)}); !errors.Is(err, ErrTimestampOrder) {
		t.Fatalf("error = %v, want ErrTimestampOrder", err)
	}
	if err := s.AddFrame(ms(50), []Sample{At(0, 0)}); err != nil {
		t.Fatalf("equal timestamps must be accepted: %v", err)
	}

	s.Stop()
	if err := s.AddFrame(ms(60), []Sample{At(0, 0)}); !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("error = %v, want ErrWindowClosed", err)
	}
}

func TestSessionRejectsFrameBeforeStart(t *testing.T) {
	s := newStarted(t, Wrist)
	if err := s.AddFrame(ms(-1), []Sample{At(0, 0)}); !errors.Is(err, ErrTimestampOrder) {
		t.Fatalf("error = %v, want ErrTimestampOrder", err)
	}
	if s.Frames() != 0 {
		t.Fatalf("frames = %d, want 0", s.Frames())
	}
	if err := s.AddFrame(t0, []Sample{At(0, 0)}); err != nil {
		t.Fatalf("frame at start: error = %v", err)
	}
}

func TestCaptureSampleRate(t *testing.T) {
	s := newStarted(t, Wrist)
	// 31 frames over 3 s: 30 displacement samples.
	for i := 0; i <= 30; i++ {
		if err := s.AddFrame(ms(100*i), []Sample{At(float64(i), 0)}); err != nil {
			t.Fatalf("AddFrame(%d) error = %v", i, err)
		}
	}

	fs, err := s.Capture().SampleRate()
	if err != nil {
		t.Fatalf("SampleRate() error = %v", err)
	}
	if math.Abs(fs-10) > 1e-12 {
		t.Fatalf("fs = %v, want 10", fs)
	}
}

func TestCaptureSampleRateInsufficient(t *testing.T) {
	s := newStarted(t, Wrist)
	for i := 0; i < MinFrames-1; i++ {
		_ = s.AddFrame(ms(30*i), []Sample{At(0, 0)})
	}
	if _, err := s.Capture().SampleRate(); !errors.Is(err, ErrInsufficientFrames) {
		t.Fatalf("error = %v, want ErrInsufficientFrames", err)
	}

	s.Start(t0)
	for i := 0; i < MinFrames; i++ {
		_ = s.AddFrame(t0, []Sample{At(0, 0)})
	}
	if _, err := s.Capture().SampleRate(); !errors.Is(err, ErrInsufficientFrames) {
		t.Fatalf("zero duration: error = %v, want ErrInsufficientFrames", err)
	}
}

func TestCaptureSampleRateIgnoresLostPoint(t *testing.T) {
	s := newStarted(t, Wrist, IndexTip)
	for i := 0; i <= 30; i++ {
		if err := s.AddFrame(ms(100*i), []Sample{Missing(), At(float64(i), 0)}); err != nil {
			t.Fatalf("AddFrame(%d) error = %v", i, err)
		}
	}

	fs, err := s.Capture().SampleRate()
	if err != nil {
		t.Fatalf("SampleRate() error = %v", err)
	}
	if math.Abs(fs-10) > 1e-12 {
		t.Fatalf("fs = %v, want 10 from the tracked point", fs)
	}
}

func TestCaptureSampleRateNothingTracked(t *testing.T) {
	s := newStarted(t, Wrist, IndexTip)
	for i := 0; i < 2*MinFrames; i++ {
		_ = s.AddFrame(ms(30*i), []Sample{Missing(), Missing()})
	}
	if _, err := s.Capture().SampleRate(); !errors.Is(err, ErrInsufficientFrames) {
		t.Fatalf("error = %v, want ErrInsufficientFrames", err)
	}
}

func TestCaptureIsACopy(t *testing.T) {
	s := newStarted(t, Wrist)
	_ = s.AddFrame(ms(0), []Sample{At(0, 0)})
	_ = s.AddFrame(ms(30), []Sample{At(1, 0)})

	c := s.Capture()
	c.Series[0][0] = 99
	if got := s.Capture().Series[0][0]; got != 1 {
		t.Fatalf("session series modified through capture: %v", got)
	}
}

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			return false
		}
	}
	return true
}
