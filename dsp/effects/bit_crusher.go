package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

const (
	defaultBitCrusherBitDepth   = 8
	defaultBitCrusherDownsample = 3
	minBitCrusherBitDepth       = 2
	maxBitCrusherBitDepth       = 32
	maxBitCrusherDownsample     = 256
)

// BitCrusherOption mutates bit crusher construction parameters.
type BitCrusherOption func(*bitCrusherConfig) error

type bitCrusherConfig struct {
	bitDepth   int
	downsample int
}

func defaultBitCrusherConfig() bitCrusherConfig {
	return bitCrusherConfig{
		bitDepth:   defaultBitCrusherBitDepth,
		downsample: defaultBitCrusherDownsample,
	}
}

// WithBitCrusherBitDepth sets the quantizer resolution in bits.
// Range: [2, 32].
func WithBitCrusherBitDepth(bitDepth int) BitCrusherOption {
	return func(cfg *bitCrusherConfig) error {
		if bitDepth < minBitCrusherBitDepth || bitDepth > maxBitCrusherBitDepth {
			return fmt.Errorf("%w: bit crusher bit depth must be in [%d, %d]: %d",
				core.ErrInvalidParameter, minBitCrusherBitDepth, maxBitCrusherBitDepth, bitDepth)
		}

		cfg.bitDepth = bitDepth

		return nil
	}
}

// WithBitCrusherDownsample sets the decimation factor. A value of 1 keeps
// every sample; 4 keeps every 4th one.
// Range: [1, 256].
func WithBitCrusherDownsample(factor int) BitCrusherOption {
	return func(cfg *bitCrusherConfig) error {
		if factor < 1 || factor > maxBitCrusherDownsample {
			return fmt.Errorf("%w: bit crusher downsample factor must be in [1, %d]: %d",
				core.ErrInvalidParameter, maxBitCrusherDownsample, factor)
		}

		cfg.downsample = factor

		return nil
	}
}

// BitCrusher reduces amplitude resolution and sample count for lo-fi
// aesthetics:
//
//   - Quantization: samples snap to the nearest multiple of 1/L with
//     L = 2^bits/2 - 1. Inputs are assumed in [-1, 1] but are not clipped.
//
//   - Decimation: only every [Downsample]-th sample is kept, without an
//     anti-alias filter. The output is shorter by that factor and keeps the
//     input's sample rate, so it plays back faster and aliased.
type BitCrusher struct {
	bitDepth   int
	downsample int

	levels float64
}

// NewBitCrusher creates a bit crusher with optional configuration overrides.
func NewBitCrusher(opts ...BitCrusherOption) (*BitCrusher, error) {
	cfg := defaultBitCrusherConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &BitCrusher{
		bitDepth:   cfg.bitDepth,
		downsample: cfg.downsample,
		levels:     math.Exp2(float64(cfg.bitDepth))/2 - 1,
	}, nil
}

// BitDepth returns the quantization bit depth.
func (bc *BitCrusher) BitDepth() int { return bc.bitDepth }

// Downsample returns the decimation factor.
func (bc *BitCrusher) Downsample() int { return bc.downsample }

// Levels returns L, the number of positive quantization steps.
func (bc *BitCrusher) Levels() float64 { return bc.levels }

// Quantize snaps a sample to the nearest level.
func (bc *BitCrusher) Quantize(sample float64) float64 {
	return math.Round(sample*bc.levels) / bc.levels
}

// OutputLen returns the decimated length for n input samples.
func (bc *BitCrusher) OutputLen(n int) int {
	return (n + bc.downsample - 1) / bc.downsample
}

// Process returns the quantized, decimated, peak-normalized signal.
func (bc *BitCrusher) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, bc.OutputLen(in.Len()))
	for k := range out {
		out[k] = bc.Quantize(in.Samples[k*bc.downsample])
	}

	return signal.Finish(out, in.SampleRate)
}
