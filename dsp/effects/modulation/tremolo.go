package modulation

import (
	"math"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

const (
	defaultTremoloRateHz = 2.0
	defaultTremoloDepth  = 0.15
	defaultTremoloLevel  = 0.9
)

// TremoloOption mutates tremolo construction parameters.
type TremoloOption func(*tremoloConfig) error

type tremoloConfig struct {
	rateHz float64
	depth  float64
	level  float64
}

func defaultTremoloConfig() tremoloConfig {
	return tremoloConfig{
		rateHz: defaultTremoloRateHz,
		depth:  defaultTremoloDepth,
		level:  defaultTremoloLevel,
	}
}

// WithTremoloRateHz sets modulation speed in Hz (>= 0).
func WithTremoloRateHz(rateHz float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if err := core.CheckNonNegative("tremolo rate", rateHz); err != nil {
			return err
		}

		cfg.rateHz = rateHz

		return nil
	}
}

// WithTremoloDepth sets modulation depth in [0, 1].
func WithTremoloDepth(depth float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if err := core.CheckRange("tremolo depth", depth, 0, 1); err != nil {
			return err
		}

		cfg.depth = depth

		return nil
	}
}

// WithTremoloLevel sets the static gain around which the LFO swings (> 0).
func WithTremoloLevel(level float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if err := core.CheckPositive("tremolo level", level); err != nil {
			return err
		}

		cfg.level = level

		return nil
	}
}

// Tremolo is the amplitude LFO level·(1 + depth·sin(2π·rate·t)).
type Tremolo struct {
	rateHz float64
	depth  float64
	level  float64
}

// NewTremolo creates a tremolo with optional overrides.
func NewTremolo(opts ...TremoloOption) (*Tremolo, error) {
	cfg := defaultTremoloConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Tremolo{rateHz: cfg.rateHz, depth: cfg.depth, level: cfg.level}, nil
}

// Gain returns the LFO gain at time t seconds.
func (tr *Tremolo) Gain(t float64) float64 {
	return tr.level * (1 + tr.depth*math.Sin(2*math.Pi*tr.rateHz*t))
}

// ProcessInPlace multiplies buf by the LFO, sample 0 at t = 0.
func (tr *Tremolo) ProcessInPlace(buf []float64, sampleRate float64) error {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return err
	}

	for n := range buf {
		buf[n] *= tr.Gain(float64(n) / sampleRate)
	}

	return nil
}
