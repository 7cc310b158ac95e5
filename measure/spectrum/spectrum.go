// Package spectrum computes diagnostic magnitude spectra and harmonic
// profiles of processed signals.
package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	dspspectrum "github.com/cwbudde/algo-hendrix/dsp/spectrum"
	"github.com/cwbudde/algo-hendrix/dsp/window"
)

// DefaultSize is the analysis frame length.
const DefaultSize = 4096

// Option configures MagnitudeDB.
type Option func(*config) error

type config struct {
	window    window.Type
	periodic  bool
	amplitude bool
}

func defaultConfig() config {
	return config{window: window.TypeHann}
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		if _, err := window.ParseType(t.String()); err != nil {
			return err
		}

		cfg.window = t

		return nil
	}
}

// WithPeriodicWindow uses the periodic window form instead of the symmetric one.
func WithPeriodicWindow() Option {
	return func(cfg *config) error {
		cfg.periodic = true

		return nil
	}
}

// WithAmplitudeScaling divides every bin by half the window sum (N·CG/2) so a
// sinusoid of amplitude A centered on a bin reads 20·log10(A).
func WithAmplitudeScaling() Option {
	return func(cfg *config) error {
		cfg.amplitude = true

		return nil
	}
}

// Spectrum is a one-sided magnitude spectrum in dB.
type Spectrum struct {
	FrequenciesHz []float64
	MagnitudeDB   []float64

	Window       window.Type
	CoherentGain float64 // mean of the window coefficients
	ENBWBins     float64 // equivalent noise bandwidth in bins, 0 if undefined
}

// MagnitudeDB returns the windowed magnitude spectrum of the first size
// samples of x: 20·log10(|X[k]| + 1e-12) for k = 0..size/2. Shorter input is
// zero padded after windowing the available samples; size <= 0 selects
// DefaultSize.
func MagnitudeDB(x []float64, sampleRate float64, size int, opts ...Option) (*Spectrum, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, err
	}

	if len(x) == 0 {
		return nil, fmt.Errorf("%w: spectrum of empty signal", core.ErrInvalidParameter)
	}

	if size <= 0 {
		size = DefaultSize
	}

	frame := x[:min(len(x), size)]

	var wopts []window.Option
	if cfg.periodic {
		wopts = append(wopts, window.WithPeriodic())
	}

	coeffs := window.Generate(cfg.window, len(frame), wopts...)

	cg, err := window.CoherentGain(coeffs)
	if err != nil {
		return nil, err
	}

	// A window that sums to zero (one-sample Hann) has no defined ENBW.
	enbw, err := window.EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		enbw = 0
	}

	windowed, err := window.ApplyCoefficients(frame, coeffs)
	if err != nil {
		return nil, err
	}

	in := make([]complex128, size)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan of size %d: %w", size, err)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	mag := dspspectrum.Magnitude(out[:size/2+1])

	if cfg.amplitude && cg > 0 {
		vecmath.ScaleBlockInPlace(mag, 2/(cg*float64(len(frame))))
	}

	dspspectrum.MagnitudeDB(mag)

	return &Spectrum{
		FrequenciesHz: dspspectrum.BinFrequencies(size, sampleRate),
		MagnitudeDB:   mag,
		Window:        cfg.window,
		CoherentGain:  cg,
		ENBWBins:      enbw,
	}, nil
}

// Peak returns the loudest bin between loHz and hiHz inclusive.
func (s *Spectrum) Peak(loHz, hiHz float64) (freqHz, levelDB float64) {
	levelDB = math.Inf(-1)

	for k, f := range s.FrequenciesHz {
		if f < loHz || f > hiHz {
			continue
		}

		if s.MagnitudeDB[k] > levelDB {
			freqHz, levelDB = f, s.MagnitudeDB[k]
		}
	}

	return freqHz, levelDB
}

// Harmonic is the level of one multiple of a fundamental.
type Harmonic struct {
	Order       int
	FrequencyHz float64
	Amplitude   float64
	RelativeDB  float64
}

// HarmonicProfile measures the amplitudes of the first count multiples of
// fundamentalHz (order 1 is the fundamental) with single-bin Goertzel
// analysis and reports each relative to the fundamental. Harmonics above
// Nyquist are omitted. THD is sqrt(Σ A_k², k>=2)/A_1.
func HarmonicProfile(x []float64, sampleRate, fundamentalHz float64, count int) ([]Harmonic, float64, error) {
	if err := core.CheckPositive("fundamental", fundamentalHz); err != nil {
		return nil, 0, err
	}

	if count < 1 {
		return nil, 0, fmt.Errorf("%w: harmonic count must be >= 1: %d", core.ErrInvalidParameter, count)
	}

	var (
		out  []Harmonic
		sum  float64
		fund float64
	)

	for k := 1; k <= count; k++ {
		f := float64(k) * fundamentalHz
		if f > sampleRate/2 {
			break
		}

		a, err := dspspectrum.ToneAmplitude(x, f, sampleRate)
		if err != nil {
			return nil, 0, err
		}

		if k == 1 {
			fund = a
		} else {
			sum += a * a
		}

		out = append(out, Harmonic{Order: k, FrequencyHz: f, Amplitude: a})
	}

	for i := range out {
		out[i].RelativeDB = core.LinearToDB(out[i].Amplitude / math.Max(fund, dspspectrum.MagnitudeFloor))
	}

	thd := 0.0
	if fund > 0 {
		thd = math.Sqrt(sum) / fund
	}

	return out, thd, nil
}
