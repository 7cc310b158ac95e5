package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

// SampleRate is the rate used by effect tests.
const SampleRate = 48000

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Signal wraps samples at SampleRate, failing t on error.
func Signal(t testing.TB, samples []float64) *signal.Signal {
	t.Helper()
	s, err := signal.New(samples, SampleRate)
	if err != nil {
		t.Fatalf("signal.New() error = %v", err)
	}
	return s
}

// SineSignal returns a sine at freqHz lasting seconds at SampleRate.
func SineSignal(t testing.TB, freqHz, amplitude, seconds float64) *signal.Signal {
	t.Helper()
	return Signal(t, DeterministicSine(freqHz, SampleRate, amplitude, int(seconds*SampleRate)))
}

// GuitarTone returns the synthesized plucked note used as chain input.
func GuitarTone(t testing.TB, freqHz, seconds float64) *signal.Signal {
	t.Helper()
	s, err := signal.NewGenerator().GuitarNote(freqHz, seconds)
	if err != nil {
		t.Fatalf("GuitarNote() error = %v", err)
	}
	return s
}
