package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

const (
	guitarNoteLevel      = 0.6
	guitarNoteAttackRate = 50.0
	guitarSecondHarmonic = 0.25
	guitarThirdHarmonic  = 0.15
	defaultGeneratorSeed = 1
)

// Generator creates deterministic source signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: defaultGeneratorSeed,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

func (g *Generator) sampleRate() int {
	return int(math.Round(g.cfg.SampleRate))
}

func (g *Generator) samplesFor(seconds float64) (int, error) {
	if err := core.CheckPositive("duration", seconds); err != nil {
		return 0, err
	}

	n := int(g.cfg.SampleRate * seconds)
	if n <= 0 {
		return 0, fmt.Errorf("%w: duration %g s yields no samples", core.ErrInvalidParameter, seconds)
	}

	return n, nil
}

// Sine generates amplitude·sin(2π·f·n/sr) for the given number of samples.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) (*Signal, error) {
	if samples <= 0 {
		return nil, ErrEmptySignal
	}

	if err := core.CheckPositive("sine frequency", freqHz); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return Wrap(out, g.sampleRate())
}

// GuitarNote synthesizes a plucked-string-like tone: the fundamental plus
// second and third harmonics at 0.25 and 0.15, shaped by a 1-exp(-50t)
// attack and peak-normalized.
func (g *Generator) GuitarNote(freqHz, seconds float64) (*Signal, error) {
	if err := core.CheckPositive("note frequency", freqHz); err != nil {
		return nil, err
	}

	n, err := g.samplesFor(seconds)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	w := 2 * math.Pi * freqHz

	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		x := math.Sin(w*t) +
			guitarSecondHarmonic*math.Sin(2*w*t) +
			guitarThirdHarmonic*math.Sin(3*w*t)
		env := 1 - math.Exp(-t*guitarNoteAttackRate)
		out[i] = x * env * guitarNoteLevel
	}

	if err := Normalize(out); err != nil {
		return nil, err
	}

	return Wrap(out, g.sampleRate())
}

// Impulse returns a signal with amplitude at pos and zeros elsewhere.
func (g *Generator) Impulse(amplitude float64, samples, pos int) (*Signal, error) {
	if samples <= 0 {
		return nil, ErrEmptySignal
	}

	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("%w: impulse position %d outside [0, %d)", core.ErrInvalidParameter, pos, samples)
	}

	out := make([]float64, samples)
	out[pos] = amplitude

	return Wrap(out, g.sampleRate())
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) (*Signal, error) {
	if samples <= 0 {
		return nil, ErrEmptySignal
	}

	if err := core.CheckNonNegative("noise amplitude", amplitude); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return Wrap(out, g.sampleRate())
}
