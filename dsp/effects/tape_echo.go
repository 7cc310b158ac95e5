package effects

import (
	"fmt"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/delay"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

const (
	defaultTapeEchoDelayMs  = 120.0
	defaultTapeEchoFeedback = 0.6
	defaultTapeEchoHFLoss   = 0.75
	maxTapeEchoDelayMs      = 10000.0
)

// TapeEchoOption mutates tape echo construction parameters.
type TapeEchoOption func(*tapeEchoConfig) error

type tapeEchoConfig struct {
	delayMs  float64
	feedback float64
	hfLoss   float64
}

func defaultTapeEchoConfig() tapeEchoConfig {
	return tapeEchoConfig{
		delayMs:  defaultTapeEchoDelayMs,
		feedback: defaultTapeEchoFeedback,
		hfLoss:   defaultTapeEchoHFLoss,
	}
}

// WithTapeEchoDelayMs sets the delay time in milliseconds, in (0, 10000].
func WithTapeEchoDelayMs(ms float64) TapeEchoOption {
	return func(cfg *tapeEchoConfig) error {
		if err := core.CheckPositive("tape echo delay", ms); err != nil {
			return err
		}

		if ms > maxTapeEchoDelayMs {
			return fmt.Errorf("%w: tape echo delay must be <= %g ms: %f", core.ErrInvalidParameter, maxTapeEchoDelayMs, ms)
		}

		cfg.delayMs = ms

		return nil
	}
}

// WithTapeEchoFeedback sets the recirculation gain in [0, 1).
func WithTapeEchoFeedback(feedback float64) TapeEchoOption {
	return func(cfg *tapeEchoConfig) error {
		if !core.IsFinite(feedback) || feedback < 0 || feedback >= 1 {
			return fmt.Errorf("%w: tape echo feedback must be in [0, 1): %f", core.ErrInvalidParameter, feedback)
		}

		cfg.feedback = feedback

		return nil
	}
}

// WithTapeEchoHFLoss sets the attenuation applied to the recirculated signal
// in [0, 1].
func WithTapeEchoHFLoss(loss float64) TapeEchoOption {
	return func(cfg *tapeEchoConfig) error {
		if err := core.CheckRange("tape echo hf loss", loss, 0, 1); err != nil {
			return err
		}

		cfg.hfLoss = loss

		return nil
	}
}

// TapeEcho is a single-head feedback echo: y[n] = x[n] + feedback·hfLoss·y[n-d].
// The loss is a plain gain on the recirculated signal, not a filter, so each
// repeat is feedback·hfLoss times the previous one.
type TapeEcho struct {
	delayMs  float64
	feedback float64
	hfLoss   float64
}

// NewTapeEcho creates a tape echo with practical defaults and optional
// overrides.
func NewTapeEcho(opts ...TapeEchoOption) (*TapeEcho, error) {
	cfg := defaultTapeEchoConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &TapeEcho{
		delayMs:  cfg.delayMs,
		feedback: cfg.feedback,
		hfLoss:   cfg.hfLoss,
	}, nil
}

// DelayMs returns the delay time in milliseconds.
func (e *TapeEcho) DelayMs() float64 { return e.delayMs }

// Feedback returns the recirculation gain.
func (e *TapeEcho) Feedback() float64 { return e.feedback }

// HFLoss returns the recirculation attenuation.
func (e *TapeEcho) HFLoss() float64 { return e.hfLoss }

// RepeatRatio returns the amplitude ratio between successive repeats.
func (e *TapeEcho) RepeatRatio() float64 { return e.feedback * e.hfLoss }

// DelaySamples returns the delay in whole samples at sampleRate.
func (e *TapeEcho) DelaySamples(sampleRate float64) (int, error) {
	return delay.SamplesForMilliseconds(sampleRate, e.delayMs)
}

// ProcessInPlace runs the echo recursion over buf without normalizing. A fresh
// delay line is used per call, so nothing carries over between calls.
func (e *TapeEcho) ProcessInPlace(buf []float64, sampleRate float64) error {
	d, err := e.DelaySamples(sampleRate)
	if err != nil {
		return err
	}

	line, err := delay.New(d)
	if err != nil {
		return err
	}

	g := e.feedback * e.hfLoss
	for i, x := range buf {
		y := x + g*line.Tap()
		line.Write(y)
		buf[i] = y
	}

	return nil
}

// Process returns the echoed, peak-normalized signal.
func (e *TapeEcho) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, in.Len())
	copy(out, in.Samples)

	if err := e.ProcessInPlace(out, in.Rate()); err != nil {
		return nil, err
	}

	return signal.Finish(out, in.SampleRate)
}
