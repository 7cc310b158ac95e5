package effects

import (
	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

const (
	defaultCompressorDriveDB = 12.0
	minCompressorDriveDB     = -24.0
	maxCompressorDriveDB     = 48.0
)

// CompressorOption mutates compressor construction parameters.
type CompressorOption func(*compressorConfig) error

type compressorConfig struct {
	driveDB  float64
	softKnee bool
}

// WithCompressorDriveDB sets the make-up gain in dB, in [-24, 48].
func WithCompressorDriveDB(db float64) CompressorOption {
	return func(cfg *compressorConfig) error {
		if err := core.CheckRange("compressor drive", db, minCompressorDriveDB, maxCompressorDriveDB); err != nil {
			return err
		}

		cfg.driveDB = db

		return nil
	}
}

// WithCompressorSoftKnee selects tanh saturation (true) or plain gain (false).
func WithCompressorSoftKnee(soft bool) CompressorOption {
	return func(cfg *compressorConfig) error {
		cfg.softKnee = soft

		return nil
	}
}

// Compressor is a stateless sustain-style compressor: a fixed gain followed
// by tanh saturation. Combined with the final peak normalization this lifts
// quiet tails relative to attacks.
type Compressor struct {
	driveDB  float64
	gain     float64
	softKnee bool
}

// NewCompressor creates a compressor with optional overrides.
func NewCompressor(opts ...CompressorOption) (*Compressor, error) {
	cfg := compressorConfig{driveDB: defaultCompressorDriveDB, softKnee: true}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Compressor{
		driveDB:  cfg.driveDB,
		gain:     core.DBToLinear(cfg.driveDB),
		softKnee: cfg.softKnee,
	}, nil
}

// DriveDB returns the gain in dB.
func (c *Compressor) DriveDB() float64 { return c.driveDB }

// SoftKnee reports whether tanh saturation is applied.
func (c *Compressor) SoftKnee() bool { return c.softKnee }

// ProcessSample compresses one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	y := c.gain * x
	if c.softKnee {
		return mathTanh(y)
	}

	return y
}

// Process returns the compressed, peak-normalized signal.
func (c *Compressor) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, in.Len())
	for i, x := range in.Samples {
		out[i] = c.ProcessSample(x)
	}

	return signal.Finish(out, in.SampleRate)
}
