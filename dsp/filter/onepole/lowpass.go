// Package onepole implements the one-pole recursive low-pass used as
// pickup/cable pre-emphasis ahead of the distortion stages.
package onepole

import (
	"math"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

// Lowpass is y[n] = α·y[n-1] + (1-α)·x[n] with α = exp(-1/(sr·RC)) and
// RC = 1/(2π·fc). Each sample depends on the previous output, so the filter
// runs strictly in order.
type Lowpass struct {
	alpha float64
}

// NewLowpass returns a low-pass with cutoff cutoffHz.
func NewLowpass(cutoffHz, sampleRate float64) (*Lowpass, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, err
	}

	if err := core.CheckPositive("low-pass cutoff", cutoffHz); err != nil {
		return nil, err
	}

	rc := 1 / (2 * math.Pi * cutoffHz)

	return &Lowpass{alpha: math.Exp(-1 / (sampleRate * rc))}, nil
}

// Alpha returns the feedback coefficient.
func (l *Lowpass) Alpha() float64 { return l.alpha }

// ProcessTo filters src into dst. The recursion is seeded with the first
// input sample, so y[0] = x[0].
func (l *Lowpass) ProcessTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	a, b := l.alpha, 1-l.alpha
	y := src[0]
	dst[0] = y

	for n := 1; n < len(src); n++ {
		y = a*y + b*src[n]
		dst[n] = y
	}
}
