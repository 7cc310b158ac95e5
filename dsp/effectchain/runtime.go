package effectchain

import "github.com/cwbudde/algo-hendrix/dsp/signal"

// Effect is a configured, whole-signal transform. Process must not modify
// its input and returns a new, peak-normalized signal.
type Effect interface {
	Process(in *signal.Signal) (*signal.Signal, error)
}

// EffectFunc adapts a plain function to Effect.
type EffectFunc func(in *signal.Signal) (*signal.Signal, error)

// Process calls f(in).
func (f EffectFunc) Process(in *signal.Signal) (*signal.Signal, error) {
	return f(in)
}
