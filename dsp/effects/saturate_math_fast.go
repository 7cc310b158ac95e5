//go:build fastmath

package effects

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

const (
	// tanhSaturated is the |x| above which tanh(x) rounds to ±1.
	tanhSaturated = 19.0

	// tanhTolerance bounds |mathTanh(x) - math.Tanh(x)| for the balanced
	// FastExp polynomial.
	tanhTolerance = 2e-6
)

// mathTanh computes tanh(x) = 1 - 2/(e^(2x)+1) using a fast exponential.
// The magnitude is evaluated on |x| so the curve stays odd-symmetric.
func mathTanh(x float64) float64 {
	a := math.Abs(x)
	if a > tanhSaturated {
		return math.Copysign(1, x)
	}

	return math.Copysign(1-2/(approx.FastExp(2*a)+1), x)
}
