package spectrum

import "fmt"

// MinSamples is the shortest series the estimator analyzes.
const MinSamples = 32

// Strategy is one way of estimating a band-limited spectrum. A strategy
// reports failure with an error; the estimator then tries the next one.
type Strategy interface {
	Method() Method
	Estimate(x []float64, fs float64) (Spectrum, error)
}

// Attempt records a strategy that did not produce a spectrum.
type Attempt struct {
	Method Method
	Err    error
}

// Estimate is the outcome of [Estimator.Estimate].
type Estimate struct {
	Spectrum Spectrum
	Method   Method
	// Failed lists the strategies tried before Method, in order.
	Failed []Attempt
}

// Estimator tries an ordered list of strategies and keeps the first success.
type Estimator struct {
	strategies []Strategy
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithStrategies replaces the default strategy order.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Estimator) {
		e.strategies = append([]Strategy(nil), strategies...)
	}
}

// DefaultStrategies returns autocorrelation, Welch and the synthetic fallback,
// in that order.
func DefaultStrategies() []Strategy {
	return []Strategy{Autocorrelation{}, Welch{}, Synthetic{}}
}

// NewEstimator creates an estimator with [DefaultStrategies] unless
// overridden.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{strategies: DefaultStrategies()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Strategies returns a copy of the configured order.
func (e *Estimator) Strategies() []Strategy {
	return append([]Strategy(nil), e.strategies...)
}

// Estimate returns the spectrum of the first strategy that succeeds on x.
// Series shorter than MinSamples yield an empty spectrum with MethodNone.
// Estimate never panics or returns an error; strategy failures, including
// panics, are listed in Failed.
func (e *Estimator) Estimate(x []float64, fs float64) Estimate {
	if len(x) < MinSamples {
		return Estimate{
			Method: MethodNone,
			Failed: []Attempt{{Method: MethodNone, Err: fmt.Errorf("%w: %d < %d samples", ErrTooShort, len(x), MinSamples)}},
		}
	}

	var failed []Attempt
	for _, s := range e.strategies {
		spec, err := try(s, x, fs)
		if err == nil && spec.Empty() {
			err = ErrNoPower
		}
		if err != nil {
			failed = append(failed, Attempt{Method: s.Method(), Err: err})
			continue
		}
		return Estimate{Spectrum: spec, Method: s.Method(), Failed: failed}
	}

	return Estimate{Method: MethodNone, Failed: failed}
}

func try(s Strategy, x []float64, fs float64) (spec Spectrum, err error) {
	defer func() {
		if r := recover(); r != nil {
			spec = Spectrum{}
			err = fmt.Errorf("spectrum: %s strategy panicked: %v", s.Method(), r)
		}
	}()
	return s.Estimate(x, fs)
}
