// Package biquad provides second-order IIR sections and cascades.
//
// A [Section] runs Direct Form II Transposed for one set of [Coefficients];
// [Chain] cascades sections for higher-order responses such as the
// band-pass used by the wah. Coefficient design lives in dsp/filter/design.
package biquad
