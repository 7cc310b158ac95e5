package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/filter/allpass"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

const (
	defaultVibeRateHz    = 4.0
	defaultVibeDepth     = 0.9
	defaultVibeBlockSize = 128
	vibeLFOCenter        = 0.6
	vibeLFOSwing         = 0.4
	vibeStageOffset      = 0.5
	vibeTremoloDepth     = 0.15
	vibeTremoloLevel     = 0.9
)

// DefaultVibeStagesHz are the base frequencies of the four all-pass stages.
var DefaultVibeStagesHz = []float64{220, 440, 700, 1100}

// VibeOption mutates vibe construction parameters.
type VibeOption func(*vibeConfig) error

type vibeConfig struct {
	rateHz    float64
	depth     float64
	blockSize int
	stagesHz  []float64
}

func defaultVibeConfig() vibeConfig {
	return vibeConfig{
		rateHz:    defaultVibeRateHz,
		depth:     defaultVibeDepth,
		blockSize: defaultVibeBlockSize,
		stagesHz:  DefaultVibeStagesHz,
	}
}

// WithVibeRateHz sets the LFO rate in Hz (>= 0). The tremolo runs at half
// this rate.
func WithVibeRateHz(rateHz float64) VibeOption {
	return func(cfg *vibeConfig) error {
		if err := core.CheckNonNegative("vibe rate", rateHz); err != nil {
			return err
		}

		cfg.rateHz = rateHz

		return nil
	}
}

// WithVibeDepth sets the per-stage wet share in [0, 1].
func WithVibeDepth(depth float64) VibeOption {
	return func(cfg *vibeConfig) error {
		if err := core.CheckRange("vibe depth", depth, 0, 1); err != nil {
			return err
		}

		cfg.depth = depth

		return nil
	}
}

// WithVibeBlockSize sets how long each stage frequency is held, in samples.
func WithVibeBlockSize(n int) VibeOption {
	return func(cfg *vibeConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: vibe block size must be >= 1: %d", core.ErrInvalidParameter, n)
		}

		cfg.blockSize = n

		return nil
	}
}

// WithVibeStagesHz replaces the all-pass base frequencies.
func WithVibeStagesHz(freqs ...float64) VibeOption {
	return func(cfg *vibeConfig) error {
		if len(freqs) == 0 {
			return fmt.Errorf("%w: vibe needs at least one stage", core.ErrInvalidParameter)
		}

		for _, f := range freqs {
			if err := core.CheckPositive("vibe stage frequency", f); err != nil {
				return err
			}
		}

		cfg.stagesHz = append([]float64(nil), freqs...)

		return nil
	}
}

// Vibe is a photocell-style phase shifter: a series of first-order all-pass
// stages, each blended with its own input, whose frequencies follow
//
//	lfo(t) = 0.6 + 0.4·sin(2π·rate·t),  f = base·(0.5 + lfo)
//
// The frequencies are sampled at the start of each block and held for the
// block; stage state carries across blocks, so processing is strictly
// sequential. A slow tremolo at half the LFO rate is applied last.
type Vibe struct {
	rateHz    float64
	depth     float64
	blockSize int
	stagesHz  []float64
}

// NewVibe creates a vibe with the classic four-stage defaults.
func NewVibe(opts ...VibeOption) (*Vibe, error) {
	cfg := defaultVibeConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Vibe{
		rateHz:    cfg.rateHz,
		depth:     cfg.depth,
		blockSize: cfg.blockSize,
		stagesHz:  cfg.stagesHz,
	}, nil
}

// LFO returns the modulation value at time t seconds.
func (v *Vibe) LFO(t float64) float64 {
	return vibeLFOCenter + vibeLFOSwing*math.Sin(2*math.Pi*v.rateHz*t)
}

// StageFrequency returns the frequency of a stage with base baseHz at time t.
func (v *Vibe) StageFrequency(baseHz, t float64) float64 {
	return baseHz * (vibeStageOffset + v.LFO(t))
}

// Process returns the phase-shifted, peak-normalized signal.
func (v *Vibe) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sr := in.Rate()
	buf := make([]float64, in.Len())
	copy(buf, in.Samples)

	for _, base := range v.stagesHz {
		if peak := base * (vibeStageOffset + vibeLFOCenter + vibeLFOSwing); peak >= sr/2 {
			return nil, fmt.Errorf("%w: vibe stage %g Hz sweeps to %g Hz, above Nyquist at %g Hz",
				core.ErrInvalidParameter, base, peak, sr)
		}

		stage, err := allpass.NewStage(v.StageFrequency(base, 0), sr)
		if err != nil {
			return nil, err
		}

		for start := 0; start < len(buf); start += v.blockSize {
			end := min(start+v.blockSize, len(buf))

			if err := stage.SetFrequency(v.StageFrequency(base, in.Time(start))); err != nil {
				return nil, err
			}

			stage.ProcessBlockMix(buf[start:end], buf[start:end], v.depth)
		}
	}

	trem, err := NewTremolo(
		WithTremoloRateHz(v.rateHz/2),
		WithTremoloDepth(vibeTremoloDepth),
		WithTremoloLevel(vibeTremoloLevel),
	)
	if err != nil {
		return nil, err
	}

	if err := trem.ProcessInPlace(buf, sr); err != nil {
		return nil, err
	}

	return signal.Finish(buf, in.SampleRate)
}
