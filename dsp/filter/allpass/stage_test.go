package allpass

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

func TestCoefficient(t *testing.T) {
	w0 := 2 * math.Pi * 440 / 48000
	want := (1 - math.Sin(w0)) / (1 + math.Sin(w0))
	if got := Coefficient(440, 48000); math.Abs(got-want) > 1e-15 {
		t.Fatalf("Coefficient() = %v, want %v", got, want)
	}
}

func TestUnityMagnitude(t *testing.T) {
	s, err := NewStage(700, 48000)
	if err != nil {
		t.Fatalf("NewStage() error = %v", err)
	}

	// Steady-state RMS of a sine is preserved by an all-pass.
	const n = 48000
	var inE, outE float64
	for i := 0; i < n; i++ {
		x := math.Sin(2 * math.Pi * 1000 * float64(i) / 48000)
		y := s.ProcessSample(x)
		if i >= n/2 {
			inE += x * x
			outE += y * y
		}
	}

	if math.Abs(outE/inE-1) > 1e-3 {
		t.Fatalf("energy ratio = %v, want 1", outE/inE)
	}
}

func TestSetFrequencyKeepsState(t *testing.T) {
	s, _ := NewStage(220, 48000)
	s.ProcessSample(1)
	x1, y1 := s.x1, s.y1

	if err := s.SetFrequency(1100); err != nil {
		t.Fatal(err)
	}
	if s.x1 != x1 || s.y1 != y1 {
		t.Fatal("SetFrequency reset state")
	}
	if s.A() != Coefficient(1100, 48000) {
		t.Fatal("coefficient not updated")
	}
}

func TestProcessBlockMix(t *testing.T) {
	ref, _ := NewStage(440, 48000)
	s, _ := NewStage(440, 48000)

	src := []float64{1, 0.5, -0.25, 0, 0.75}
	dst := make([]float64, len(src))
	s.ProcessBlockMix(dst, src, 0.9)

	for i, x := range src {
		want := 0.1*x + 0.9*ref.ProcessSample(x)
		if math.Abs(dst[i]-want) > 1e-15 {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}

func TestInvalidFrequency(t *testing.T) {
	if _, err := NewStage(-1, 48000); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
	if _, err := NewStage(100, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestImpulseTailSettlesToZero(t *testing.T) {
	s, err := NewStage(1000, 48000)
	if err != nil {
		t.Fatalf("NewStage() error = %v", err)
	}

	s.ProcessSample(1)

	var y float64
	for i := 0; i < 399; i++ {
		y = s.ProcessSample(0)
	}

	// Unflushed, the tail would still be around 1e-46 here.
	if y != 0 {
		t.Fatalf("tail after 400 samples = %g, want exactly 0", y)
	}
}
