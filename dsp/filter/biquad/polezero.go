package biquad

import "math/cmplx"

// Poles returns the z-plane roots of 1 + A1 z^-1 + A2 z^-2.
func (c *Coefficients) Poles() [2]complex128 {
	disc := cmplx.Sqrt(complex(c.A1*c.A1-4*c.A2, 0))
	a1 := complex(c.A1, 0)

	return [2]complex128{(-a1 + disc) / 2, (-a1 - disc) / 2}
}

// IsStable reports whether both poles lie strictly inside the unit circle.
func (c *Coefficients) IsStable() bool {
	for _, p := range c.Poles() {
		if cmplx.Abs(p) >= 1 {
			return false
		}
	}

	return true
}
