// Package spectrum provides spectrum-domain helpers: magnitude extraction
// from complex FFT bins, dB conversion, bin frequencies and a single-bin
// Goertzel analyzer.
//
// The package does not implement an FFT; measure/spectrum pairs it with
// algo-fft.
package spectrum
