package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/filter/biquad"
)

const (
	// MinBandEdgeHz is the lowest band-pass edge BandEdges will produce.
	MinBandEdgeHz = 30.0
	// NyquistGuardHz keeps the upper band edge this far below Nyquist.
	NyquistGuardHz = 100.0
)

// BandEdges derives band-pass edges from a center frequency and Q:
// bw = fc/q, low = max(30, fc-bw/2), high = min(sr/2-100, fc+bw/2).
// The clamping is part of the contract; collapsed bands are reported as
// ErrInvalidParameter.
func BandEdges(centerHz, q, sampleRate float64) (low, high float64, err error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return 0, 0, err
	}

	if err := core.CheckPositive("center frequency", centerHz); err != nil {
		return 0, 0, err
	}

	if err := core.CheckPositive("Q", q); err != nil {
		return 0, 0, err
	}

	bw := centerHz / q
	low = math.Max(MinBandEdgeHz, centerHz-bw/2)
	high = math.Min(sampleRate/2-NyquistGuardHz, centerHz+bw/2)

	if low >= high {
		return 0, 0, fmt.Errorf("%w: band [%g, %g] Hz collapsed for center %g Hz, Q %g at %g Hz",
			core.ErrInvalidParameter, low, high, centerHz, q, sampleRate)
	}

	return low, high, nil
}

// ButterworthBandpass designs a band-pass from a second-order Butterworth
// low-pass prototype with pre-warped edges lowHz and highHz. The result is
// two cascaded sections (fourth order overall) with unity gain at the
// geometric center and -3 dB at both edges.
func ButterworthBandpass(lowHz, highHz, sampleRate float64) ([]biquad.Coefficients, error) {
	if err := core.CheckSampleRate(sampleRate); err != nil {
		return nil, err
	}

	nyquist := sampleRate / 2
	if !core.IsFinite(lowHz) || !core.IsFinite(highHz) || lowHz <= 0 || highHz <= lowHz || highHz >= nyquist {
		return nil, fmt.Errorf("%w: band-pass edges must satisfy 0 < low < high < %g: low=%f high=%f",
			core.ErrInvalidParameter, nyquist, lowHz, highHz)
	}

	k := 2 * sampleRate
	wl := k * math.Tan(math.Pi*lowHz/sampleRate)
	wh := k * math.Tan(math.Pi*highHz/sampleRate)
	bw := wh - wl
	w0sq := wl * wh

	// Upper-half-plane pole of the order-2 Butterworth prototype; its
	// conjugate yields the conjugate band-pass poles.
	proto := complex(-math.Sqrt2/2, math.Sqrt2/2)
	scaled := proto * complex(bw/2, 0)
	spread := cmplx.Sqrt(scaled*scaled - complex(w0sq, 0))
	analog := [2]complex128{scaled + spread, scaled - spread}

	kc := complex(k, 0)
	gain := bw * bw * k * k

	sections := make([]biquad.Coefficients, 2)

	for i, p := range analog {
		gain /= sqAbs(kc - p)

		z := (kc + p) / (kc - p)
		sections[i] = biquad.Coefficients{
			B0: 1,
			B2: -1,
			A1: -2 * real(z),
			A2: sqAbs(z),
		}
	}

	sections[0].B0 = gain
	sections[0].B2 = -gain

	return sections, nil
}

// WahBandpass designs the wah's band-pass for an instantaneous center
// frequency: BandEdges followed by ButterworthBandpass.
func WahBandpass(centerHz, q, sampleRate float64) ([]biquad.Coefficients, error) {
	low, high, err := BandEdges(centerHz, q, sampleRate)
	if err != nil {
		return nil, err
	}

	return ButterworthBandpass(low, high, sampleRate)
}

func sqAbs(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}
