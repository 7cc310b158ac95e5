// Package effects provides the whole-signal guitar effects that do not need
// an LFO.
//
// Effects in this package:
//   - Fuzz: pre-emphasis low-pass into a soft/hard clipper blend.
//   - Octave: full-wave rectifier octave-up.
//   - TapeEcho: single-head feedback echo on a circular delay line.
//   - BitCrusher: quantization and decimation.
//   - Compressor: fixed gain with tanh saturation.
//   - HardClip: symmetric clamp.
//
// LFO-driven effects (wah, vibe, tremolo, rotary) live in
// github.com/cwbudde/algo-hendrix/dsp/effects/modulation.
//
// Every Process method consumes a whole signal.Signal, leaves it untouched
// and returns a new, peak-normalized Signal at the same sample rate.
package effects
