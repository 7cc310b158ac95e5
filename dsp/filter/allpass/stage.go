// Package allpass implements the first-order all-pass stage chained by the
// vibe effect.
package allpass

import (
	"math"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

// Stage is y[n] = -a·x[n] + x[n-1] + a·y[n-1] with
// a = (1 - sin w0)/(1 + sin w0), w0 = 2π·fc/sr. Changing the frequency only
// replaces a; the previous input/output carry over.
type Stage struct {
	sampleRate float64
	a          float64
	x1, y1     float64
}

// NewStage returns a zero-state stage tuned to freqHz.
func NewStage(freqHz, sampleRate float64) (*Stage, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, err
	}

	s := &Stage{sampleRate: sampleRate}
	if err := s.SetFrequency(freqHz); err != nil {
		return nil, err
	}

	return s, nil
}

// Coefficient returns a for freqHz at sampleRate.
func Coefficient(freqHz, sampleRate float64) float64 {
	sw := math.Sin(2 * math.Pi * freqHz / sampleRate)

	return (1 - sw) / (1 + sw)
}

// SetFrequency retunes the stage without touching its state.
func (s *Stage) SetFrequency(freqHz float64) error {
	if err := core.CheckPositive("all-pass frequency", freqHz); err != nil {
		return err
	}

	s.a = Coefficient(freqHz, s.sampleRate)

	return nil
}

// A returns the current coefficient.
func (s *Stage) A() float64 { return s.a }

// ProcessSample filters one sample.
func (s *Stage) ProcessSample(x float64) float64 {
	y := core.FlushDenormals(-s.a*x + s.x1 + s.a*s.y1)
	s.x1 = x
	s.y1 = y

	return y
}

// ProcessBlockMix filters src and writes (1-depth)·dry + depth·wet to dst.
func (s *Stage) ProcessBlockMix(dst, src []float64, depth float64) {
	dry := 1 - depth

	for i, x := range src {
		dst[i] = dry*x + depth*s.ProcessSample(x)
	}
}

// Reset clears the carried input/output.
func (s *Stage) Reset() {
	s.x1 = 0
	s.y1 = 0
}
