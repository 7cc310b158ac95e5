package echo

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-hendrix/dsp/effects"
)

// DefaultDuration is the impulse response length in seconds.
const DefaultDuration = 1.2

// Errors returned by echo analysis functions.
var (
	ErrEmptyIR           = errors.New("echo: impulse response is empty")
	ErrInvalidSampleRate = errors.New("echo: sample rate must be positive")
	ErrInvalidDuration   = errors.New("echo: duration must be positive")
	ErrInvalidSpacing    = errors.New("echo: tap spacing must be positive")
	ErrNoDecay           = errors.New("echo: insufficient decay for decay time")
)

// ImpulseResponse returns durationSec seconds of the echo's response to a
// unit impulse at sample 0. The output is not normalized.
func ImpulseResponse(fx *effects.TapeEcho, durationSec, sampleRate float64) ([]float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return nil, ErrInvalidSampleRate
	}

	if durationSec <= 0 || math.IsNaN(durationSec) {
		return nil, ErrInvalidDuration
	}

	n := int(math.Round(durationSec * sampleRate))
	if n == 0 {
		return nil, ErrEmptyIR
	}

	ir := make([]float64, n)
	ir[0] = 1

	if err := fx.ProcessInPlace(ir, sampleRate); err != nil {
		return nil, err
	}

	return ir, nil
}

// Tap is one repeat found in an impulse response.
type Tap struct {
	Index     int
	TimeSec   float64
	Amplitude float64
}

// Peaks finds one tap near every multiple of spacing, searching a window
// of ±spacing/4 samples for the largest magnitude. Silent windows end the
// search. ratios[i] is Taps[i+1].Amplitude / Taps[i].Amplitude.
func Peaks(ir []float64, spacing int, sampleRate float64) (taps []Tap, ratios []float64, err error) {
	if len(ir) == 0 {
		return nil, nil, ErrEmptyIR
	}

	if spacing <= 0 {
		return nil, nil, ErrInvalidSpacing
	}

	if sampleRate <= 0 {
		return nil, nil, ErrInvalidSampleRate
	}

	radius := spacing / 4

	for center := 0; center < len(ir); center += spacing {
		lo := max(0, center-radius)
		hi := min(len(ir), center+radius+1)

		idx := lo
		for i := lo; i < hi; i++ {
			if math.Abs(ir[i]) > math.Abs(ir[idx]) {
				idx = i
			}
		}

		if ir[idx] == 0 {
			break
		}

		taps = append(taps, Tap{
			Index:     idx,
			TimeSec:   float64(idx) / sampleRate,
			Amplitude: ir[idx],
		})
	}

	for i := 1; i < len(taps); i++ {
		ratios = append(ratios, taps[i].Amplitude/taps[i-1].Amplitude)
	}

	return taps, ratios, nil
}
