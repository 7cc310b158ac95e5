package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

// Goertzel evaluates a single DFT term over all samples processed since the
// last Reset. It is used to measure the level of one tone (a fundamental or
// a harmonic) without a full FFT.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s1, s2     float64
	n          int
}

// NewGoertzel creates an analyzer for frequency in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, err
	}

	if !core.IsFinite(frequency) || frequency < 0 || frequency > sampleRate/2 {
		return nil, fmt.Errorf("%w: goertzel frequency must be in [0, %g]: %v",
			core.ErrInvalidParameter, sampleRate/2, frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s1, g.s2, g.n = 0, 0, 0
}

// ProcessBlock accumulates input.
func (g *Goertzel) ProcessBlock(input []float64) {
	s1, s2 := g.s1, g.s2
	for _, x := range input {
		s0 := x + g.coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	g.s1, g.s2 = s1, s2
	g.n += len(input)
}

// Power returns |X(f)|² of the accumulated block.
func (g *Goertzel) Power() float64 {
	return g.s1*g.s1 + g.s2*g.s2 - g.coeff*g.s1*g.s2
}

// Amplitude returns the estimated peak amplitude of a sinusoid at the target
// frequency, 2·|X(f)|/N.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}
	return 2 * math.Sqrt(math.Max(g.Power(), 0)) / float64(g.n)
}

// Frequency returns the analyzed frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneAmplitude runs a fresh Goertzel over input.
func ToneAmplitude(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(input)

	return g.Amplitude(), nil
}
