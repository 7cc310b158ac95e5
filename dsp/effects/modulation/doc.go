// Package modulation provides the LFO-driven guitar effects.
//
// Included processors:
//   - AutoWah: LFO-swept band-pass, redesigned per block.
//   - Vibe: four-stage all-pass phase shifter with a slow tremolo.
//   - Tremolo: sine amplitude modulation.
//   - Rotary: stylized rotating speaker (AM/PM carrier plus dry signal).
//
// All LFOs start at phase zero on the first sample, so every effect is a
// pure function of its input.
package modulation
