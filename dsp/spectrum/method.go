package spectrum

// Method identifies the strategy that produced a spectrum.
type Method int

const (
	// MethodNone marks an empty spectrum, e.g. for a series that was too short.
	MethodNone Method = iota
	MethodAutocorrelation
	MethodWelch
	MethodSynthetic
)

// String returns the lower-case method name.
func (m Method) String() string {
	switch m {
	case MethodAutocorrelation:
		return "autocorrelation"
	case MethodWelch:
		return "welch"
	case MethodSynthetic:
		return "synthetic"
	default:
		return "none"
	}
}
