package modulation

import (
	"math"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

const (
	defaultRotaryRateHz    = 5.5
	defaultRotaryDevHz     = 3.0
	defaultRotaryDepth     = 0.5
	defaultRotaryCarrierHz = 330.0
	defaultRotaryWet       = 0.6
)

// RotaryOption mutates rotating-speaker construction parameters.
type RotaryOption func(*rotaryConfig) error

type rotaryConfig struct {
	rateHz    float64
	devHz     float64
	depth     float64
	carrierHz float64
	wet       float64
}

func defaultRotaryConfig() rotaryConfig {
	return rotaryConfig{
		rateHz:    defaultRotaryRateHz,
		devHz:     defaultRotaryDevHz,
		depth:     defaultRotaryDepth,
		carrierHz: defaultRotaryCarrierHz,
		wet:       defaultRotaryWet,
	}
}

// WithRotaryRateHz sets the rotor speed in Hz (>= 0).
func WithRotaryRateHz(rateHz float64) RotaryOption {
	return func(cfg *rotaryConfig) error {
		if err := core.CheckNonNegative("rotary rate", rateHz); err != nil {
			return err
		}

		cfg.rateHz = rateHz

		return nil
	}
}

// WithRotaryDeviationHz sets the peak Doppler frequency deviation (>= 0).
func WithRotaryDeviationHz(devHz float64) RotaryOption {
	return func(cfg *rotaryConfig) error {
		if err := core.CheckNonNegative("rotary deviation", devHz); err != nil {
			return err
		}

		cfg.devHz = devHz

		return nil
	}
}

// WithRotaryDepth sets the amplitude modulation depth in [0, 1].
func WithRotaryDepth(depth float64) RotaryOption {
	return func(cfg *rotaryConfig) error {
		if err := core.CheckRange("rotary depth", depth, 0, 1); err != nil {
			return err
		}

		cfg.depth = depth

		return nil
	}
}

// WithRotaryCarrierHz sets the synthetic carrier frequency (> 0).
func WithRotaryCarrierHz(hz float64) RotaryOption {
	return func(cfg *rotaryConfig) error {
		if err := core.CheckPositive("rotary carrier", hz); err != nil {
			return err
		}

		cfg.carrierHz = hz

		return nil
	}
}

// WithRotaryWet sets the carrier share of the output in [0, 1]; the input
// makes up the rest.
func WithRotaryWet(wet float64) RotaryOption {
	return func(cfg *rotaryConfig) error {
		if err := core.CheckRange("rotary wet", wet, 0, 1); err != nil {
			return err
		}

		cfg.wet = wet

		return nil
	}
}

// Rotary is a stylized rotating speaker. A fixed sine carrier is amplitude
// and phase modulated by the rotor LFO and mixed with the dry input:
//
//	am(t)    = 1 + depth·sin(2π·rate·t)
//	phase[n] = 2π/sr · Σ_{k<=n} dev·sin(2π·rate·k/sr)
//	y[n]     = wet·am·sin(2π·carrier·t + phase[n]) + (1-wet)·x[n]
//
// It does not model horn/drum acoustics.
type Rotary struct {
	rateHz    float64
	devHz     float64
	depth     float64
	carrierHz float64
	wet       float64
}

// NewRotary creates a rotary with practical defaults and optional overrides.
func NewRotary(opts ...RotaryOption) (*Rotary, error) {
	cfg := defaultRotaryConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Rotary{
		rateHz:    cfg.rateHz,
		devHz:     cfg.devHz,
		depth:     cfg.depth,
		carrierHz: cfg.carrierHz,
		wet:       cfg.wet,
	}, nil
}

// Process returns the modulated, peak-normalized signal.
func (r *Rotary) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sr := in.Rate()
	out := make([]float64, in.Len())
	phase := 0.0

	for n, x := range in.Samples {
		t := in.Time(n)
		lfo := math.Sin(2 * math.Pi * r.rateHz * t)
		phase += 2 * math.Pi * r.devHz * lfo / sr
		am := 1 + r.depth*lfo
		out[n] = r.wet*am*math.Sin(2*math.Pi*r.carrierHz*t+phase) + (1-r.wet)*x
	}

	return signal.Finish(out, in.SampleRate)
}
