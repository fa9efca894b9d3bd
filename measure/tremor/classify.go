package tremor

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Band edges for classification, in Hz.
const (
	RestingUpperHz   = 4.0
	EssentialUpperHz = 7.0
)

// Class is a coarse clinical tremor category.
type Class int

const (
	// ClassNone means no frequency was available to classify.
	ClassNone Class = iota
	ClassResting
	ClassEssential
	ClassPhysiological
)

// String returns the label shown to users.
func (c Class) String() string {
	switch c {
	case ClassResting:
		return "resting (parkinsonian-type)"
	case ClassEssential:
		return "essential tremor"
	case ClassPhysiological:
		return "physiological/anxiety tremor"
	default:
		return "none"
	}
}

// Classify maps a frequency to its band: [0,4) resting, [4,7) essential and
// [7,∞) physiological. NaN yields ClassNone.
func Classify(freq float64) Class {
	switch {
	case math.IsNaN(freq):
		return ClassNone
	case freq < RestingUpperHz:
		return ClassResting
	case freq < EssentialUpperHz:
		return ClassEssential
	default:
		return ClassPhysiological
	}
}

// Aggregate returns the power-weighted mean frequency of peaks,
// sum(f*p)/sum(p). It returns NaN when peaks is empty or carries no power;
// callers must report that as "no dominant frequency".
func Aggregate(peaks []Peak) float64 {
	if len(peaks) == 0 {
		return math.NaN()
	}

	freqs := make([]float64, len(peaks))
	powers := make([]float64, len(peaks))
	total := 0.0
	for i, p := range peaks {
		freqs[i] = p.Frequency
		powers[i] = p.Power
		total += p.Power
	}
	if total <= 0 {
		return math.NaN()
	}

	return stat.Mean(freqs, powers)
}
