package signal

import "github.com/cwbudde/algo-vecmath"

// NormalizeEpsilon keeps normalization of a silent buffer finite.
const NormalizeEpsilon = 1e-12

// Peak returns max(|x|).
func Peak(samples []float64) float64 {
	return vecmath.MaxAbs(samples)
}

// Normalize scales samples in place by 1/(max|x| + NormalizeEpsilon), so the
// resulting peak is at most 1. Relative loudness between calls is discarded.
func Normalize(samples []float64) error {
	if len(samples) == 0 {
		return ErrEmptySignal
	}

	vecmath.ScaleBlockInPlace(samples, 1/(Peak(samples)+NormalizeEpsilon))

	return nil
}

// Finish rejects non-finite samples, peak-normalizes them in place and wraps
// them as a Signal at sampleRate. Effects call it as their last step.
func Finish(samples []float64, sampleRate int) (*Signal, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySignal
	}

	if err := CheckFinite(samples); err != nil {
		return nil, err
	}

	if err := Normalize(samples); err != nil {
		return nil, err
	}

	return Wrap(samples, sampleRate)
}
