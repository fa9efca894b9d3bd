package motion

import "fmt"

// Landmark indexes one of the 21 hand landmarks reported by the tracker.
type Landmark int

const (
	Wrist Landmark = iota
	ThumbCMC
	ThumbMCP
	ThumbIP
	ThumbTip
	IndexMCP
	IndexPIP
	IndexDIP
	IndexTip
	MiddleMCP
	MiddlePIP
	MiddleDIP
	MiddleTip
	RingMCP
	RingPIP
	RingDIP
	RingTip
	PinkyMCP
	PinkyPIP
	PinkyDIP
	PinkyTip

	// LandmarkCount is the number of landmarks in a hand.
	LandmarkCount = int(PinkyTip) + 1
)

type landmarkInfo struct {
	label string
	x, y  float64
}

// landmarks holds label and normalized layout position per landmark for a
// right hand, palm up.
var landmarks = [LandmarkCount]landmarkInfo{
	Wrist:     {"wrist", 0.5, 0.8},
	ThumbCMC:  {"thumb base", 0.5, 0.7},
	ThumbMCP:  {"thumb middle", 0.4, 0.6},
	ThumbIP:   {"thumb joint", 0.3, 0.5},
	ThumbTip:  {"thumb tip", 0.2, 0.4},
	IndexMCP:  {"index base", 0.5, 0.6},
	IndexPIP:  {"index middle", 0.5, 0.45},
	IndexDIP:  {"index joint", 0.5, 0.3},
	IndexTip:  {"index tip", 0.5, 0.15},
	MiddleMCP: {"middle base", 0.6, 0.58},
	MiddlePIP: {"middle middle", 0.6, 0.43},
	MiddleDIP: {"middle joint", 0.6, 0.28},
	MiddleTip: {"middle tip", 0.6, 0.13},
	RingMCP:   {"ring base", 0.7, 0.6},
	RingPIP:   {"ring middle", 0.7, 0.45},
	RingDIP:   {"ring joint", 0.7, 0.3},
	RingTip:   {"ring tip", 0.7, 0.15},
	PinkyMCP:  {"pinky base", 0.8, 0.65},
	PinkyPIP:  {"pinky middle", 0.8, 0.5},
	PinkyDIP:  {"pinky joint", 0.8, 0.35},
	PinkyTip:  {"pinky tip", 0.8, 0.2},
}

// KeyPoints are the landmarks analyzed by default: the wrist plus base and
// tip of every finger.
var KeyPoints = []Landmark{
	Wrist, ThumbTip,
	IndexMCP, IndexTip,
	MiddleMCP, MiddleTip,
	RingMCP, RingTip,
	PinkyMCP, PinkyTip,
}

// Valid reports whether l is a known landmark.
func (l Landmark) Valid() bool {
	return l >= 0 && int(l) < LandmarkCount
}

// Label returns the human-readable landmark name.
func (l Landmark) Label() string {
	if !l.Valid() {
		return fmt.Sprintf("point %d", int(l))
	}
	return landmarks[l].label
}

// String implements fmt.Stringer.
func (l Landmark) String() string { return l.Label() }

// Position returns the normalized layout position used for hand maps.
func (l Landmark) Position() (x, y float64) {
	if !l.Valid() {
		return 0, 0
	}
	info := landmarks[l]
	return info.x, info.y
}

// ParseLandmarks converts tracker indices to landmarks, rejecting unknown ones.
func ParseLandmarks(indices []int) ([]Landmark, error) {
	out := make([]Landmark, len(indices))
	seen := make(map[Landmark]bool, len(indices))
	for i, idx := range indices {
		l := Landmark(idx)
		if !l.Valid() {
			return nil, fmt.Errorf("motion: unknown landmark index %d", idx)
		}
		if seen[l] {
			return nil, fmt.Errorf("motion: duplicate landmark index %d", idx)
		}
		seen[l] = true
		out[i] = l
	}
	return out, nil
}
