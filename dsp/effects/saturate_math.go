//go:build !fastmath

package effects

import "math"

// tanhTolerance bounds |mathTanh(x) - math.Tanh(x)|.
const tanhTolerance = 1e-12

// mathTanh computes tanh(x) using standard library math.
func mathTanh(x float64) float64 {
	return math.Tanh(x)
}
