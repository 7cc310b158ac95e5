package effects

import (
	"fmt"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/filter/onepole"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

const (
	defaultFuzzDrive     = 8.0
	defaultFuzzHardMix   = 0.45
	defaultFuzzClipLevel = 0.6
	defaultFuzzToneHz    = 3500.0

	maxFuzzDrive = 100.0
)

// FuzzOption mutates fuzz construction parameters.
type FuzzOption func(*fuzzConfig) error

type fuzzConfig struct {
	drive     float64
	hardMix   float64
	clipLevel float64
	toneHz    float64
}

func defaultFuzzConfig() fuzzConfig {
	return fuzzConfig{
		drive:     defaultFuzzDrive,
		hardMix:   defaultFuzzHardMix,
		clipLevel: defaultFuzzClipLevel,
		toneHz:    defaultFuzzToneHz,
	}
}

// WithFuzzDrive sets the pre-gain applied before both clippers, in (0, 100].
func WithFuzzDrive(drive float64) FuzzOption {
	return func(cfg *fuzzConfig) error {
		if err := core.CheckPositive("fuzz drive", drive); err != nil {
			return err
		}

		if drive > maxFuzzDrive {
			return fmt.Errorf("%w: fuzz drive must be <= %g: %f", core.ErrInvalidParameter, maxFuzzDrive, drive)
		}

		cfg.drive = drive

		return nil
	}
}

// WithFuzzHardMix sets the hard-clip share of the blend in [0, 1].
func WithFuzzHardMix(mix float64) FuzzOption {
	return func(cfg *fuzzConfig) error {
		if err := core.CheckRange("fuzz hard mix", mix, 0, 1); err != nil {
			return err
		}

		cfg.hardMix = mix

		return nil
	}
}

// WithFuzzClipLevel sets the hard-clip ceiling (> 0).
func WithFuzzClipLevel(level float64) FuzzOption {
	return func(cfg *fuzzConfig) error {
		if err := core.CheckPositive("fuzz clip level", level); err != nil {
			return err
		}

		cfg.clipLevel = level

		return nil
	}
}

// WithFuzzToneHz sets the pre-emphasis low-pass cutoff in Hz.
func WithFuzzToneHz(hz float64) FuzzOption {
	return func(cfg *fuzzConfig) error {
		if err := core.CheckPositive("fuzz tone", hz); err != nil {
			return err
		}

		cfg.toneHz = hz

		return nil
	}
}

// Fuzz models a driven fuzz pedal: a pickup-style one-pole low-pass followed
// by a blend of tanh soft clipping and hard clipping of the driven signal.
type Fuzz struct {
	drive     float64
	hardMix   float64
	clipLevel float64
	toneHz    float64
}

// NewFuzz creates a fuzz with the classic defaults and optional overrides.
func NewFuzz(opts ...FuzzOption) (*Fuzz, error) {
	cfg := defaultFuzzConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Fuzz{
		drive:     cfg.drive,
		hardMix:   cfg.hardMix,
		clipLevel: cfg.clipLevel,
		toneHz:    cfg.toneHz,
	}, nil
}

// Drive returns the pre-gain.
func (f *Fuzz) Drive() float64 { return f.drive }

// HardMix returns the hard-clip share of the blend.
func (f *Fuzz) HardMix() float64 { return f.hardMix }

// ClipLevel returns the hard-clip ceiling.
func (f *Fuzz) ClipLevel() float64 { return f.clipLevel }

// ToneHz returns the pre-emphasis cutoff.
func (f *Fuzz) ToneHz() float64 { return f.toneHz }

// Shape applies the clipper blend to an already pre-emphasized sample.
func (f *Fuzz) Shape(x float64) float64 {
	driven := f.drive * x
	soft := mathTanh(driven)
	hard := core.Clamp(driven, -f.clipLevel, f.clipLevel)

	return (1-f.hardMix)*soft + f.hardMix*hard
}

// Process returns the fuzzed, peak-normalized signal.
func (f *Fuzz) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	lp, err := onepole.NewLowpass(f.toneHz, in.Rate())
	if err != nil {
		return nil, err
	}

	out := make([]float64, in.Len())
	lp.ProcessTo(out, in.Samples)

	for i, x := range out {
		out[i] = f.Shape(x)
	}

	return signal.Finish(out, in.SampleRate)
}
