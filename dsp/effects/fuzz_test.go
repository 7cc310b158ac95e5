package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
	"github.com/cwbudde/algo-hendrix/internal/testutil"
)

func TestFuzzDefaults(t *testing.T) {
	f, err := NewFuzz()
	if err != nil {
		t.Fatalf("NewFuzz() error = %v", err)
	}

	if f.Drive() != 8 || f.HardMix() != 0.45 || f.ClipLevel() != 0.6 || f.ToneHz() != 3500 {
		t.Fatalf("defaults = %v %v %v %v", f.Drive(), f.HardMix(), f.ClipLevel(), f.ToneHz())
	}
}

func TestFuzzShape(t *testing.T) {
	f, _ := NewFuzz()

	if got := f.Shape(0); got != 0 {
		t.Fatalf("Shape(0) = %v, want 0", got)
	}

	// Far into saturation: tanh -> 1, hard clip -> 0.6.
	want := 0.55*1 + 0.45*0.6
	if got := f.Shape(10); math.Abs(got-want) > tanhTolerance {
		t.Fatalf("Shape(10) = %v, want %v", got, want)
	}

	if f.Shape(-0.3) != -f.Shape(0.3) {
		t.Fatal("Shape is not odd-symmetric")
	}
}

func TestFuzzProcess(t *testing.T) {
	f, _ := NewFuzz()
	in := testutil.GuitarTone(t, 220, 0.5)
	before := in.Clone()

	out, err := f.Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if out.Len() != in.Len() || out.SampleRate != in.SampleRate {
		t.Fatalf("Process() len=%d rate=%d", out.Len(), out.SampleRate)
	}

	testutil.RequireNormalized(t, out.Samples)
	testutil.RequireSliceNearlyEqual(t, in.Samples, before.Samples, 0)

	again, _ := f.Process(in)
	testutil.RequireSliceNearlyEqual(t, again.Samples, out.Samples, 0)
}

func TestFuzzNoiseStaysBounded(t *testing.T) {
	f, _ := NewFuzz(WithFuzzDrive(100), WithFuzzHardMix(1))
	out, err := f.Process(testutil.Signal(t, testutil.DeterministicNoise(3, 1, 4096)))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	testutil.RequireNormalized(t, out.Samples)
}

func TestFuzzInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  FuzzOption
	}{
		{"zero drive", WithFuzzDrive(0)},
		{"huge drive", WithFuzzDrive(1000)},
		{"nan drive", WithFuzzDrive(math.NaN())},
		{"mix above one", WithFuzzHardMix(1.5)},
		{"negative clip", WithFuzzClipLevel(-0.1)},
		{"zero tone", WithFuzzToneHz(0)},
		{"inf tone", WithFuzzToneHz(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFuzz(tt.opt); !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("NewFuzz() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestEffectsRejectEmptySignal(t *testing.T) {
	empty := &signal.Signal{SampleRate: 48000}

	fuzz, _ := NewFuzz()
	octave, _ := NewOctave()
	echo, _ := NewTapeEcho()
	crusher, _ := NewBitCrusher()
	comp, _ := NewCompressor()
	clip, _ := NewHardClip(0.6)

	procs := map[string]func(*signal.Signal) (*signal.Signal, error){
		"fuzz":       fuzz.Process,
		"octave":     octave.Process,
		"tape":       echo.Process,
		"bitcrush":   crusher.Process,
		"compressor": comp.Process,
		"hardclip":   clip.Process,
	}

	for name, process := range procs {
		if _, err := process(empty); !errors.Is(err, signal.ErrEmptySignal) {
			t.Fatalf("%s: error = %v, want ErrEmptySignal", name, err)
		}
	}
}
