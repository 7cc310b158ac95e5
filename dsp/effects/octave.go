package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

const (
	defaultOctaveGain   = 6.0
	defaultOctaveOffset = 0.1
)

// OctaveOption mutates octave-up construction parameters.
type OctaveOption func(*octaveConfig) error

type octaveConfig struct {
	gain   float64
	offset float64
}

// WithOctaveGain sets the tanh drive applied after rectification (> 0).
func WithOctaveGain(gain float64) OctaveOption {
	return func(cfg *octaveConfig) error {
		if err := core.CheckPositive("octave gain", gain); err != nil {
			return err
		}

		cfg.gain = gain

		return nil
	}
}

// WithOctaveOffset sets the DC offset removed after rectification in [0, 1).
func WithOctaveOffset(offset float64) OctaveOption {
	return func(cfg *octaveConfig) error {
		if !core.IsFinite(offset) || offset < 0 || offset >= 1 {
			return fmt.Errorf("%w: octave offset must be in [0, 1): %f", core.ErrInvalidParameter, offset)
		}

		cfg.offset = offset

		return nil
	}
}

// Octave is a full-wave rectifier octave-up: tanh(gain·(|x| - offset)).
// Rectification doubles the fundamental; the tanh keeps the added harmonics
// bounded.
type Octave struct {
	gain   float64
	offset float64
}

// NewOctave creates an octave-up with optional overrides.
func NewOctave(opts ...OctaveOption) (*Octave, error) {
	cfg := octaveConfig{gain: defaultOctaveGain, offset: defaultOctaveOffset}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Octave{gain: cfg.gain, offset: cfg.offset}, nil
}

// ProcessSample rectifies and shapes one sample.
func (o *Octave) ProcessSample(x float64) float64 {
	return mathTanh(o.gain * (math.Abs(x) - o.offset))
}

// Process returns the octave-up, peak-normalized signal.
func (o *Octave) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, in.Len())
	for i, x := range in.Samples {
		out[i] = o.ProcessSample(x)
	}

	return signal.Finish(out, in.SampleRate)
}
