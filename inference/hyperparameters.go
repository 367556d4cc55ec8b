package inference

import "log"

import "github.com/pkg/errors"

// Defaults used by New.
const (
	DefaultBeamWidth = 4
	DefaultMaxLength = 32
)

// HyperParameters are the search settings of an engine.
type HyperParameters struct {
	BeamWidth int // hypotheses kept per step, 1 means greedy
	MaxLength int // output symbols after which decoding stops

	Logger *log.Logger // receives one line describing the engine on New
}

// Option changes the hyper parameters of an engine under construction.
type Option func(*HyperParameters) error

// WithBeamWidth sets the number of hypotheses kept per step.
func WithBeamWidth(k int) Option {
	return func(h *HyperParameters) error {
		if k < 1 {
			return errors.Errorf("beam width %d, must be at least 1", k)
		}
		h.BeamWidth = k
		return nil
	}
}

// WithMaxLength bounds the number of output symbols.
func WithMaxLength(n int) Option {
	return func(h *HyperParameters) error {
		if n < 1 {
			return errors.Errorf("max length %d, must be at least 1", n)
		}
		h.MaxLength = n
		return nil
	}
}

// WithLogger sets the logger receiving construction messages.
func WithLogger(l *log.Logger) Option {
	return func(h *HyperParameters) error {
		if l == nil {
			return errors.New("nil logger")
		}
		h.Logger = l
		return nil
	}
}
