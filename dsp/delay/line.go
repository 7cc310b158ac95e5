package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

// Line is a fixed-length circular delay line. It owns its storage and starts
// zero-filled; the write position advances one sample per Write.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a zero-filled delay line holding capacity samples.
func New(capacity int) (*Line, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: delay capacity must be > 0: %d", core.ErrInvalidParameter, capacity)
	}

	return &Line{buffer: make([]float64, capacity)}, nil
}

// SamplesForMilliseconds converts a delay time to a whole sample count,
// rounding half away from zero: round(sampleRate*ms/1000). 120 ms at 48 kHz
// is exactly 5760 samples; 0.01 ms at 48 kHz (0.48 samples) is rejected.
func SamplesForMilliseconds(sampleRate, ms float64) (int, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return 0, err
	}

	if err := core.CheckPositive("delay time", ms); err != nil {
		return 0, err
	}

	n := math.Round(sampleRate * ms / 1000)
	if n < 1 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: delay of %g ms at %g Hz is %g samples", core.ErrInvalidParameter, ms, sampleRate, n)
	}

	return int(n), nil
}

// Len returns the capacity in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Tap returns the sample written Len() writes ago (zero until the line has
// been filled once).
func (d *Line) Tap() float64 {
	return d.buffer[d.writePos]
}

// Read returns the sample written delay writes ago, 1 <= delay <= Len().
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := ((d.writePos-delay)%size + size) % size

	return d.buffer[readPos]
}

// Write stores one sample and advances the write position.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++

	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Reset zero-fills the line and rewinds the write position.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}

	d.writePos = 0
}
