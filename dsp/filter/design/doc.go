// Package design computes biquad coefficients for the filters used by the
// effects: the Butterworth band-pass behind the wah sweep and its band-edge
// rules.
package design
