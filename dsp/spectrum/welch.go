package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tremor/dsp/core"
	"github.com/cwbudde/algo-tremor/dsp/window"
)

const (
	// MaxSegmentLength caps the Welch segment length.
	MaxSegmentLength = 256
	// MinSegmentLength is the shortest segment Welch will transform.
	MinSegmentLength = 32
)

// Welch estimates power by averaging periodograms of windowed segments that
// overlap by 50%. The default taper is a symmetric Hann window.
//
// Segment length is min(MaxSegment, largest power of two <= N). Bin k maps to
// k*fs/segLen for 0 <= k <= segLen/2 and the accumulated power per segment is
// (Re^2+Im^2)/segLen.
type Welch struct {
	// MaxSegment overrides MaxSegmentLength when > 0.
	MaxSegment int
	// Window selects the segment taper.
	Window window.Type
	// Fast is tried first for power-of-two segments. Nil uses a fresh [FFT].
	Fast Transform
	// Slow is used when Fast fails or the segment is not a power of two.
	// Nil uses [DFT].
	Slow Transform
}

// Method implements [Strategy].
func (Welch) Method() Method { return MethodWelch }

// SegmentLength returns the segment length Welch uses for n samples, or 0 if
// the series is too short.
func (w Welch) SegmentLength(n int) int {
	maxSeg := w.MaxSegment
	if maxSeg <= 0 {
		maxSeg = MaxSegmentLength
	}
	segLen := min(maxSeg, core.FloorPowerOfTwo(n))
	if segLen < MinSegmentLength {
		return 0
	}
	return segLen
}

// Estimate implements [Strategy].
func (w Welch) Estimate(x []float64, fs float64) (Spectrum, error) {
	if err := validateSampleRate(fs); err != nil {
		return Spectrum{}, err
	}
	segLen := w.SegmentLength(len(x))
	if segLen == 0 {
		return Spectrum{}, fmt.Errorf("%w: welch needs %d samples, got %d", ErrTooShort, MinSegmentLength, len(x))
	}

	fast, slow := w.Fast, w.Slow
	if fast == nil {
		fast = NewFFT()
	}
	if slow == nil {
		slow = DFT{}
	}

	var (
		step     = segLen / 2
		bins     = segLen/2 + 1
		taper    = window.Generate(w.Window, segLen)
		segment  = make([]float64, segLen)
		out      = make([]complex128, segLen)
		re       = make([]float64, bins)
		im       = make([]float64, bins)
		segPower = make([]float64, bins)
		acc      = make([]float64, bins)
		segments int
	)

	for start := 0; start+segLen <= len(x); start += step {
		if err := window.Apply(segment, x[start:start+segLen], taper); err != nil {
			return Spectrum{}, fmt.Errorf("spectrum: %w", err)
		}

		if err := transformSegment(fast, slow, out, segment); err != nil {
			return Spectrum{}, err
		}

		for k := 0; k < bins; k++ {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}
		vecmath.Power(segPower, re, im)
		vecmath.AddBlockInPlace(acc, segPower)
		segments++
	}

	psd := make([]float64, bins)
	vecmath.ScaleBlock(psd, acc, 1/float64(segLen*segments))

	hzPerBin := fs / float64(segLen)
	freqs := make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) * hzPerBin
	}

	band := Spectrum{Freqs: freqs, Power: psd}.TremorBand()
	if !usable(band) {
		return Spectrum{}, ErrNoPower
	}
	return band, nil
}

// transformSegment runs the fast path for power-of-two segments and falls
// back to the slow path on any error.
func transformSegment(fast, slow Transform, dst []complex128, src []float64) error {
	if core.IsPowerOfTwo(len(src)) {
		if err := fast.Forward(dst, src); err == nil {
			return nil
		}
	}
	if err := slow.Forward(dst, src); err != nil {
		return fmt.Errorf("spectrum: segment transform failed: %w", err)
	}
	return nil
}

// usable reports whether s has at least one point and a positive, finite total.
func usable(s Spectrum) bool {
	if s.Empty() {
		return false
	}
	total := s.TotalPower()
	return total > 0 && core.IsFinite(total)
}
