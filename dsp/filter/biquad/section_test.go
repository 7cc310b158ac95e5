package biquad

import (
	"math"
	"testing"
)

var testCoeffs = Coefficients{B0: 0.2, B1: 0.1, B2: -0.05, A1: -0.6, A2: 0.2}

func TestProcessBlockMatchesSample(t *testing.T) {
	in := make([]float64, 97)
	for i := range in {
		in[i] = math.Sin(float64(i) * 0.3)
	}

	ref := NewSection(testCoeffs)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = ref.ProcessSample(x)
	}

	s := NewSection(testCoeffs)
	got := append([]float64(nil), in...)
	s.ProcessBlock(got[:50])
	s.ProcessBlock(got[50:])

	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-14 {
			t.Fatalf("sample %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestProcessBlockToLeavesSource(t *testing.T) {
	src := []float64{1, 0, 0, 0}
	dst := make([]float64, 4)
	NewSection(testCoeffs).ProcessBlockTo(dst, src)

	if src[0] != 1 || src[1] != 0 {
		t.Fatalf("source mutated: %v", src)
	}
	if dst[0] != testCoeffs.B0 {
		t.Fatalf("dst[0] = %v, want B0", dst[0])
	}
}

func TestResetAndState(t *testing.T) {
	s := NewSection(testCoeffs)
	s.ProcessSample(1)
	saved := s.State()
	if saved == [2]float64{} {
		t.Fatal("expected non-zero state after processing")
	}

	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("state after reset = %v", s.State())
	}

	s.SetState(saved)
	if s.State() != saved {
		t.Fatalf("SetState did not restore state")
	}
}

func TestChainCascade(t *testing.T) {
	c := NewChain([]Coefficients{testCoeffs, testCoeffs})

	a, b := NewSection(testCoeffs), NewSection(testCoeffs)
	buf := []float64{1, -0.5, 0.25, 0, 0, 0}
	want := make([]float64, len(buf))
	for i, x := range buf {
		want[i] = b.ProcessSample(a.ProcessSample(x))
	}

	c.ProcessBlock(buf)
	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-14 {
			t.Fatalf("sample %d: got %v want %v", i, buf[i], want[i])
		}
	}
}

func TestChainImpulseResponsePreservesState(t *testing.T) {
	c := NewChain([]Coefficients{testCoeffs})
	c.ProcessSample(0.7)
	before := c.State()

	ir := c.ImpulseResponse(8)
	if len(ir) != 8 || ir[0] != testCoeffs.B0 {
		t.Fatalf("unexpected impulse response %v", ir)
	}
	if c.State()[0] != before[0] {
		t.Fatal("ImpulseResponse modified chain state")
	}
}
