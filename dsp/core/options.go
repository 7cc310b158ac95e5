package core

import "fmt"

// DefaultSampleRate is the rate every built-in effect assumes unless told
// otherwise.
const DefaultSampleRate = 48000

// ProcessorConfig carries the settings shared by signal sources and the
// effect chain.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the 48 kHz offline defaults.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		BlockSize:  1024,
	}
}

// WithSampleRate sets the processing sample rate. Non-positive values are
// ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size. Non-positive values are
// ignored.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate reports an ErrInvalidParameter error for unusable settings.
func (c ProcessorConfig) Validate() error {
	if err := CheckSampleRate(c.SampleRate); err != nil {
		return err
	}

	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidParameter, c.BlockSize)
	}

	return nil
}
