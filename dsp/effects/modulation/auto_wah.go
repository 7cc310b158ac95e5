package modulation

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/filter/biquad"
	"github.com/cwbudde/algo-hendrix/dsp/filter/design"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

const (
	defaultAutoWahMinFreqHz = 350.0
	defaultAutoWahMaxFreqHz = 2000.0
	defaultAutoWahRateHz    = 1.2
	defaultAutoWahQ         = 2.5
	defaultAutoWahBlockSize = 256
)

// BandpassDesigner returns the sections of a band-pass centered on centerHz.
type BandpassDesigner func(centerHz, q, sampleRate float64) ([]biquad.Coefficients, error)

// AutoWahOption mutates auto-wah construction parameters.
type AutoWahOption func(*autoWahConfig) error

type autoWahConfig struct {
	minFreqHz float64
	maxFreqHz float64
	rateHz    float64
	q         float64
	blockSize int
	workers   int
	designer  BandpassDesigner
}

func defaultAutoWahConfig() autoWahConfig {
	return autoWahConfig{
		minFreqHz: defaultAutoWahMinFreqHz,
		maxFreqHz: defaultAutoWahMaxFreqHz,
		rateHz:    defaultAutoWahRateHz,
		q:         defaultAutoWahQ,
		blockSize: defaultAutoWahBlockSize,
		workers:   1,
		designer:  design.WahBandpass,
	}
}

// WithAutoWahFrequencyRangeHz sets the swept center range in Hz.
func WithAutoWahFrequencyRangeHz(minFreqHz, maxFreqHz float64) AutoWahOption {
	return func(cfg *autoWahConfig) error {
		if err := core.CheckPositive("auto-wah min frequency", minFreqHz); err != nil {
			return err
		}

		if !core.IsFinite(maxFreqHz) || maxFreqHz < minFreqHz {
			return fmt.Errorf("%w: auto-wah max frequency must be >= min frequency and finite: min=%f max=%f",
				core.ErrInvalidParameter, minFreqHz, maxFreqHz)
		}

		cfg.minFreqHz = minFreqHz
		cfg.maxFreqHz = maxFreqHz

		return nil
	}
}

// WithAutoWahRateHz sets the sweep LFO rate in Hz. Zero holds the center at
// the middle of the range.
func WithAutoWahRateHz(rateHz float64) AutoWahOption {
	return func(cfg *autoWahConfig) error {
		if err := core.CheckNonNegative("auto-wah rate", rateHz); err != nil {
			return err
		}

		cfg.rateHz = rateHz

		return nil
	}
}

// WithAutoWahQ sets filter Q (> 0).
func WithAutoWahQ(q float64) AutoWahOption {
	return func(cfg *autoWahConfig) error {
		if err := core.CheckPositive("auto-wah Q", q); err != nil {
			return err
		}

		cfg.q = q

		return nil
	}
}

// WithAutoWahBlockSize sets how many samples share one filter design.
func WithAutoWahBlockSize(n int) AutoWahOption {
	return func(cfg *autoWahConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: auto-wah block size must be >= 1: %d", core.ErrInvalidParameter, n)
		}

		cfg.blockSize = n

		return nil
	}
}

// WithAutoWahWorkers spreads blocks over n goroutines. Blocks share no
// filter state, so the output does not depend on n.
func WithAutoWahWorkers(n int) AutoWahOption {
	return func(cfg *autoWahConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: auto-wah workers must be >= 1: %d", core.ErrInvalidParameter, n)
		}

		cfg.workers = n

		return nil
	}
}

// WithAutoWahDesigner replaces the band-pass designer invoked once per block.
func WithAutoWahDesigner(d BandpassDesigner) AutoWahOption {
	return func(cfg *autoWahConfig) error {
		if d == nil {
			return fmt.Errorf("%w: auto-wah designer must not be nil", core.ErrInvalidParameter)
		}

		cfg.designer = d

		return nil
	}
}

// AutoWah sweeps a band-pass with a sine LFO:
//
//	center(t) = min + 0.5·(1 + sin(2π·rate·t))·(max - min)
//
// The signal is cut into fixed blocks. Each block gets a freshly designed
// filter tuned to the center at its first sample and starts from zero state,
// which produces the characteristic stepped sweep.
type AutoWah struct {
	minFreqHz float64
	maxFreqHz float64
	rateHz    float64
	q         float64
	blockSize int
	workers   int
	designer  BandpassDesigner
}

// NewAutoWah creates an auto-wah with practical defaults and optional overrides.
func NewAutoWah(opts ...AutoWahOption) (*AutoWah, error) {
	cfg := defaultAutoWahConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &AutoWah{
		minFreqHz: cfg.minFreqHz,
		maxFreqHz: cfg.maxFreqHz,
		rateHz:    cfg.rateHz,
		q:         cfg.q,
		blockSize: cfg.blockSize,
		workers:   cfg.workers,
		designer:  cfg.designer,
	}, nil
}

// CenterHz returns the swept center frequency at time t seconds.
func (a *AutoWah) CenterHz(t float64) float64 {
	return a.minFreqHz + 0.5*(1+math.Sin(2*math.Pi*a.rateHz*t))*(a.maxFreqHz-a.minFreqHz)
}

// RateHz returns the sweep rate.
func (a *AutoWah) RateHz() float64 { return a.rateHz }

// Q returns the filter quality factor.
func (a *AutoWah) Q() float64 { return a.q }

// BlockSize returns the number of samples per filter design.
func (a *AutoWah) BlockSize() int { return a.blockSize }

// Process returns the swept, peak-normalized signal.
func (a *AutoWah) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	n := in.Len()
	blocks := (n + a.blockSize - 1) / a.blockSize
	out := make([]float64, n)
	errs := make([]error, blocks)

	workers := min(a.workers, blocks)
	if workers <= 1 {
		for b := range blocks {
			errs[b] = a.processBlock(out, in, b)
		}
	} else {
		var wg sync.WaitGroup

		for w := range workers {
			wg.Add(1)

			go func(w int) {
				defer wg.Done()

				for b := w; b < blocks; b += workers {
					errs[b] = a.processBlock(out, in, b)
				}
			}(w)
		}

		wg.Wait()
	}

	for b, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("auto-wah block %d: %w", b, err)
		}
	}

	return signal.Finish(out, in.SampleRate)
}

func (a *AutoWah) processBlock(out []float64, in *signal.Signal, b int) error {
	start := b * a.blockSize
	end := min(start+a.blockSize, in.Len())

	coeffs, err := a.designer(a.CenterHz(in.Time(start)), a.q, in.Rate())
	if err != nil {
		return err
	}

	biquad.NewChain(coeffs).ProcessBlockTo(out[start:end], in.Samples[start:end])

	return nil
}
