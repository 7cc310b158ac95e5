package modulation

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/internal/testutil"
)

func TestRotaryDryOnly(t *testing.T) {
	r, err := NewRotary(WithRotaryWet(0))
	if err != nil {
		t.Fatalf("NewRotary() error = %v", err)
	}

	in := testutil.GuitarTone(t, 220, 0.2)

	out, err := r.Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out.Samples, in.Samples, 1e-9)
}

func TestRotaryUnmodulatedCarrier(t *testing.T) {
	r, _ := NewRotary(WithRotaryWet(1), WithRotaryDepth(0), WithRotaryDeviationHz(0))

	// 0.1 s of 330 Hz contains peaks at exactly +-1 within float error.
	out, err := r.Process(testutil.Signal(t, testutil.DC(0.25, 4800)))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want := testutil.DeterministicSine(330, 48000, 1, 4800)
	testutil.RequireSliceNearlyEqual(t, out.Samples, want, 1e-6)
}

func TestRotaryDefaults(t *testing.T) {
	r, _ := NewRotary()
	in := testutil.GuitarTone(t, 220, 0.5)

	out, err := r.Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if out.Len() != in.Len() {
		t.Fatalf("len = %d, want %d", out.Len(), in.Len())
	}

	testutil.RequireNormalized(t, out.Samples)
}

func TestRotaryInvalidOptions(t *testing.T) {
	for _, opt := range []RotaryOption{
		WithRotaryRateHz(-1),
		WithRotaryDeviationHz(math.Inf(1)),
		WithRotaryDepth(1.5),
		WithRotaryCarrierHz(0),
		WithRotaryWet(-0.1),
	} {
		if _, err := NewRotary(opt); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("NewRotary() error = %v, want ErrInvalidParameter", err)
		}
	}
}
