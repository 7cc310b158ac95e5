package effectchain

import (
	"github.com/cwbudde/algo-hendrix/dsp/effects"
	"github.com/cwbudde/algo-hendrix/dsp/effects/modulation"
)

type registryConfig struct {
	wahDesigner modulation.BandpassDesigner
}

// RegistryOption configures the default registry.
type RegistryOption func(*registryConfig)

// WithWahDesigner sets the band-pass designer used by the wah.
func WithWahDesigner(d modulation.BandpassDesigner) RegistryOption {
	return func(c *registryConfig) { c.wahDesigner = d }
}

// DefaultRegistry returns a Registry pre-populated with all built-in effects.
//
//nolint:funlen
func DefaultRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := NewRegistry()

	r.MustRegister(Definition{
		Name:    "fuzz",
		Summary: "pre-emphasis low-pass into a tanh/hard-clip blend",
		Params: []ParamSpec{
			{Name: "drive", Default: 8, Min: 0.01, Max: 100},
			{Name: "hard_mix", Default: 0.45, Min: 0, Max: 1},
			{Name: "clip", Default: 0.6, Min: 0.01, Max: 10},
			{Name: "tone_hz", Default: 3500, Min: 20, Max: 20000, Unit: "Hz"},
		},
		Factory: func(p Params) (Effect, error) {
			return build(effects.NewFuzz(
				effects.WithFuzzDrive(p["drive"]),
				effects.WithFuzzHardMix(p["hard_mix"]),
				effects.WithFuzzClipLevel(p["clip"]),
				effects.WithFuzzToneHz(p["tone_hz"]),
			))
		},
	})
	r.MustRegister(Definition{
		Name:    "wah",
		Summary: "LFO-swept band-pass redesigned every block",
		Params: []ParamSpec{
			{Name: "f_lo", Default: 350, Min: 20, Max: 20000, Unit: "Hz"},
			{Name: "f_hi", Default: 2000, Min: 20, Max: 20000, Unit: "Hz"},
			{Name: "rate_hz", Default: 1.2, Min: 0, Max: 20, Unit: "Hz"},
			{Name: "q", Default: 2.5, Min: 0.1, Max: 50},
			{Name: "block", Default: 256, Min: 1, Max: 65536, Integer: true, Unit: "samples"},
			{Name: "workers", Default: 1, Min: 1, Max: 64, Integer: true},
		},
		Factory: func(p Params) (Effect, error) {
			opts := []modulation.AutoWahOption{
				modulation.WithAutoWahFrequencyRangeHz(p["f_lo"], p["f_hi"]),
				modulation.WithAutoWahRateHz(p["rate_hz"]),
				modulation.WithAutoWahQ(p["q"]),
				modulation.WithAutoWahBlockSize(int(p["block"])),
				modulation.WithAutoWahWorkers(int(p["workers"])),
			}
			if cfg.wahDesigner != nil {
				opts = append(opts, modulation.WithAutoWahDesigner(cfg.wahDesigner))
			}

			return build(modulation.NewAutoWah(opts...))
		},
	})
	r.MustRegister(Definition{
		Name:    "vibe",
		Aliases: []string{"univibe"},
		Summary: "four-stage all-pass phase shifter with slow tremolo",
		Params: []ParamSpec{
			{Name: "rate_hz", Default: 4, Min: 0, Max: 20, Unit: "Hz"},
			{Name: "depth", Default: 0.9, Min: 0, Max: 1},
		},
		Factory: func(p Params) (Effect, error) {
			return build(modulation.NewVibe(
				modulation.WithVibeRateHz(p["rate_hz"]),
				modulation.WithVibeDepth(p["depth"]),
			))
		},
	})
	r.MustRegister(Definition{
		Name:    "octave",
		Aliases: []string{"octavia"},
		Summary: "full-wave rectifier octave-up",
		Params: []ParamSpec{
			{Name: "gain", Default: 6, Min: 0.01, Max: 100},
			{Name: "offset", Default: 0.1, Min: 0, Max: 1, MaxExclusive: true},
		},
		Factory: func(p Params) (Effect, error) {
			return build(effects.NewOctave(
				effects.WithOctaveGain(p["gain"]),
				effects.WithOctaveOffset(p["offset"]),
			))
		},
	})
	r.MustRegister(Definition{
		Name:    "rotary",
		Aliases: []string{"leslie"},
		Summary: "stylized rotating speaker",
		Params: []ParamSpec{
			{Name: "rate_hz", Default: 5.5, Min: 0, Max: 20, Unit: "Hz"},
			{Name: "dev_hz", Default: 3, Min: 0, Max: 100, Unit: "Hz"},
			{Name: "depth", Default: 0.5, Min: 0, Max: 1},
			{Name: "carrier_hz", Default: 330, Min: 1, Max: 20000, Unit: "Hz"},
			{Name: "wet", Default: 0.6, Min: 0, Max: 1},
		},
		Factory: func(p Params) (Effect, error) {
			return build(modulation.NewRotary(
				modulation.WithRotaryRateHz(p["rate_hz"]),
				modulation.WithRotaryDeviationHz(p["dev_hz"]),
				modulation.WithRotaryDepth(p["depth"]),
				modulation.WithRotaryCarrierHz(p["carrier_hz"]),
				modulation.WithRotaryWet(p["wet"]),
			))
		},
	})
	r.MustRegister(Definition{
		Name:    "tape",
		Aliases: []string{"echo"},
		Summary: "single-head feedback tape echo",
		Params: []ParamSpec{
			{Name: "delay_ms", Default: 120, Min: 0.1, Max: 10000, Unit: "ms"},
			{Name: "feedback", Default: 0.6, Min: 0, Max: 1, MaxExclusive: true},
			{Name: "hf_loss", Default: 0.75, Min: 0, Max: 1},
		},
		Factory: func(p Params) (Effect, error) {
			return build(effects.NewTapeEcho(
				effects.WithTapeEchoDelayMs(p["delay_ms"]),
				effects.WithTapeEchoFeedback(p["feedback"]),
				effects.WithTapeEchoHFLoss(p["hf_loss"]),
			))
		},
	})
	r.MustRegister(Definition{
		Name:    "bitcrush",
		Summary: "quantize and decimate (shortens the signal)",
		Params: []ParamSpec{
			{Name: "bits", Default: 8, Min: 2, Max: 32, Integer: true},
			{Name: "downsample", Default: 3, Min: 1, Max: 256, Integer: true},
		},
		Factory: func(p Params) (Effect, error) {
			return build(effects.NewBitCrusher(
				effects.WithBitCrusherBitDepth(int(p["bits"])),
				effects.WithBitCrusherDownsample(int(p["downsample"])),
			))
		},
	})
	r.MustRegister(Definition{
		Name:    "compressor",
		Summary: "fixed gain into tanh saturation",
		Params: []ParamSpec{
			{Name: "drive_db", Default: 12, Min: -24, Max: 48, Unit: "dB"},
			{Name: "soft", Default: 1, Min: 0, Max: 1, Integer: true},
		},
		Factory: func(p Params) (Effect, error) {
			return build(effects.NewCompressor(
				effects.WithCompressorDriveDB(p["drive_db"]),
				effects.WithCompressorSoftKnee(p["soft"] != 0),
			))
		},
	})
	r.MustRegister(Definition{
		Name:    "hardclip",
		Summary: "symmetric clamp",
		Params: []ParamSpec{
			{Name: "threshold", Default: effects.DefaultHardClipThreshold(), Min: 0.001, Max: 1},
		},
		Factory: func(p Params) (Effect, error) {
			return build(effects.NewHardClip(p["threshold"]))
		},
	})

	return r
}

// build drops typed nil effects so a failed constructor yields a nil Effect.
func build[T Effect](fx T, err error) (Effect, error) {
	if err != nil {
		return nil, err
	}

	return fx, nil
}

// DefaultChain returns the classic signal path: fuzz, wah, vibe, octave-up,
// rotating speaker, tape echo.
func DefaultChain() []Step {
	names := []string{"fuzz", "wah", "vibe", "octave", "rotary", "tape"}

	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Effect: name}
	}

	return steps
}
