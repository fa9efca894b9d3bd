package motion

// Sample is one tracked point at one frame. A zero Sample means tracking
// was lost for that point.
type Sample struct {
	X, Y float64
	Luma float64

	kind sampleKind
}

type sampleKind uint8

const (
	sampleMissing sampleKind = iota
	samplePosition
	sampleLuma
)

// At returns a position sample.
func At(x, y float64) Sample {
	return Sample{X: x, Y: y, kind: samplePosition}
}

// Luminance returns an intensity-only sample, the degraded fallback when no
// position is available.
func Luminance(v float64) Sample {
	return Sample{Luma: v, kind: sampleLuma}
}

// Missing returns a sample for a point the tracker lost.
func Missing() Sample { return Sample{} }

// Valid reports whether the sample carries data.
func (s Sample) Valid() bool { return s.kind != sampleMissing }

// HasPosition reports whether the sample is a 2-D position.
func (s Sample) HasPosition() bool { return s.kind == samplePosition }

// Displacement returns the motion energy between two consecutive samples of
// the same point: dx²+dy² for positions, or the squared luminance difference
// for intensity samples. ok is false when either sample is missing or the two
// are of different kinds; nothing should be appended then.
func Displacement(prev, cur Sample) (v float64, ok bool) {
	if !prev.Valid() || prev.kind != cur.kind {
		return 0, false
	}
	if cur.HasPosition() {
		dx := cur.X - prev.X
		dy := cur.Y - prev.Y
		return dx*dx + dy*dy, true
	}
	d := cur.Luma - prev.Luma
	return d * d, true
}
