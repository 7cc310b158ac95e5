package effects

import (
	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

const defaultHardClipThreshold = 0.6

// HardClip clamps samples to [-threshold, threshold].
type HardClip struct {
	threshold float64
}

// NewHardClip creates a hard clipper. threshold must be > 0.
func NewHardClip(threshold float64) (*HardClip, error) {
	if err := core.CheckPositive("hard clip threshold", threshold); err != nil {
		return nil, err
	}

	return &HardClip{threshold: threshold}, nil
}

// DefaultHardClipThreshold returns the threshold used by the registry.
func DefaultHardClipThreshold() float64 { return defaultHardClipThreshold }

// Threshold returns the clip level.
func (h *HardClip) Threshold() float64 { return h.threshold }

// Process returns the clipped, peak-normalized signal.
func (h *HardClip) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, in.Len())
	for i, x := range in.Samples {
		out[i] = core.Clamp(x, -h.threshold, h.threshold)
	}

	return signal.Finish(out, in.SampleRate)
}
