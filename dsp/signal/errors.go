package signal

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptySignal is returned for zero-length buffers, where normalization
	// and filtering are undefined.
	ErrEmptySignal = errors.New("signal: empty signal")

	// ErrNonFiniteResult is returned when a buffer contains NaN or ±Inf.
	ErrNonFiniteResult = errors.New("signal: non-finite sample")
)

// CheckFinite returns ErrNonFiniteResult naming the first NaN/Inf sample.
func CheckFinite(samples []float64) error {
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d is %v", ErrNonFiniteResult, i, v)
		}
	}

	return nil
}
