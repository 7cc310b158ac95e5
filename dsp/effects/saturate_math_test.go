package effects

import (
	"math"
	"testing"
)

func TestMathTanh(t *testing.T) {
	for x := -25.0; x <= 25; x += 0.0137 {
		got := mathTanh(x)
		if math.Abs(got-math.Tanh(x)) > tanhTolerance {
			t.Fatalf("mathTanh(%v) = %v, want %v", x, got, math.Tanh(x))
		}

		if mathTanh(-x) != -got {
			t.Fatalf("mathTanh(%v) = %v, mathTanh(%v) = %v", -x, mathTanh(-x), x, got)
		}
	}

	if got := mathTanh(0); got != 0 {
		t.Fatalf("mathTanh(0) = %v, want 0", got)
	}
}
