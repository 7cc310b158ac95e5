package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

func TestMagnitude(t *testing.T) {
	got := Magnitude([]complex128{3 + 4i, -1, 0})
	want := []float64{5, 1, 0}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("Magnitude()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if Magnitude(nil) != nil {
		t.Fatal("Magnitude(nil) should be nil")
	}
}

func TestMagnitudeDB(t *testing.T) {
	mag := []float64{1, 0.1, 0}
	MagnitudeDB(mag)

	if math.Abs(mag[0]) > 1e-9 || math.Abs(mag[1]+20) > 1e-9 || math.Abs(mag[2]+240) > 1e-9 {
		t.Fatalf("MagnitudeDB() = %v", mag)
	}
}

func TestBinFrequencies(t *testing.T) {
	f := BinFrequencies(8, 48000)
	if len(f) != 5 || f[1] != 6000 || f[4] != 24000 {
		t.Fatalf("BinFrequencies() = %v", f)
	}
}

func TestToneAmplitude(t *testing.T) {
	const sr = 48000

	x := make([]float64, sr/10)
	for n := range x {
		ti := float64(n) / sr
		x[n] = 0.5*math.Sin(2*math.Pi*440*ti) + 0.2*math.Sin(2*math.Pi*880*ti)
	}

	for freq, want := range map[float64]float64{440: 0.5, 880: 0.2, 1320: 0} {
		got, err := ToneAmplitude(x, freq, sr)
		if err != nil {
			t.Fatalf("ToneAmplitude() error = %v", err)
		}

		if math.Abs(got-want) > 1e-3 {
			t.Fatalf("ToneAmplitude(%v) = %v, want %v", freq, got, want)
		}
	}
}

func TestGoertzelValidation(t *testing.T) {
	if _, err := NewGoertzel(30000, 48000); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}

	if _, err := NewGoertzel(100, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
}
