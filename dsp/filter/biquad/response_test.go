package biquad

import (
	"math"
	"testing"
)

func TestResponseMatchesImpulseDFT(t *testing.T) {
	c := NewChain([]Coefficients{testCoeffs})
	ir := c.ImpulseResponse(4096)

	const (
		sampleRate = 48000.0
		freq       = 1000.0
	)

	var re, im float64
	for n, h := range ir {
		w := 2 * math.Pi * freq * float64(n) / sampleRate
		re += h * math.Cos(w)
		im -= h * math.Sin(w)
	}

	want := math.Hypot(re, im)
	h := c.Response(freq, sampleRate)
	got := math.Hypot(real(h), imag(h))
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("|H| = %v, DFT of impulse response = %v", got, want)
	}
}

func TestMagnitudeDBUnityPassthrough(t *testing.T) {
	pass := Coefficients{B0: 1}
	if db := pass.MagnitudeDB(1234, 48000); math.Abs(db) > 1e-12 {
		t.Fatalf("passthrough magnitude = %v dB, want 0", db)
	}
}

func TestIsStable(t *testing.T) {
	if !testCoeffs.IsStable() {
		t.Fatalf("poles %v should be inside the unit circle", testCoeffs.Poles())
	}

	unstable := Coefficients{B0: 1, A1: -2.5, A2: 1.2}
	if unstable.IsStable() {
		t.Fatalf("poles %v should be outside the unit circle", unstable.Poles())
	}
}
