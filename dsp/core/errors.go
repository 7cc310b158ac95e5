package core

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter marks a numeric parameter outside its physical domain:
// non-finite values, non-positive frequencies, rates or delays, or mixes
// outside [0, 1].
var ErrInvalidParameter = errors.New("invalid parameter")

// CheckFinite returns an ErrInvalidParameter error when v is NaN or ±Inf.
func CheckFinite(name string, v float64) error {
	if !IsFinite(v) {
		return fmt.Errorf("%w: %s must be finite: %f", ErrInvalidParameter, name, v)
	}

	return nil
}

// CheckPositive requires v to be finite and > 0.
func CheckPositive(name string, v float64) error {
	if !IsFinite(v) || v <= 0 {
		return fmt.Errorf("%w: %s must be > 0 and finite: %f", ErrInvalidParameter, name, v)
	}

	return nil
}

// CheckNonNegative requires v to be finite and >= 0.
func CheckNonNegative(name string, v float64) error {
	if !IsFinite(v) || v < 0 {
		return fmt.Errorf("%w: %s must be >= 0 and finite: %f", ErrInvalidParameter, name, v)
	}

	return nil
}

// CheckRange requires v to be finite and inside the closed interval [lo, hi].
func CheckRange(name string, v, lo, hi float64) error {
	if !IsFinite(v) || v < lo || v > hi {
		return fmt.Errorf("%w: %s must be in [%g, %g]: %f", ErrInvalidParameter, name, lo, hi, v)
	}

	return nil
}

// CheckSampleRate validates a processing sample rate.
func CheckSampleRate(sampleRate float64) error {
	return CheckPositive("sample rate", sampleRate)
}
