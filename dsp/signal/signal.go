package signal

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

// Signal is an owned buffer of mono samples at a fixed sample rate.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// New copies samples into a new Signal.
func New(samples []float64, sampleRate int) (*Signal, error) {
	owned := make([]float64, len(samples))
	copy(owned, samples)

	return Wrap(owned, sampleRate)
}

// Wrap takes ownership of samples without copying.
func Wrap(samples []float64, sampleRate int) (*Signal, error) {
	s := &Signal{Samples: samples, SampleRate: sampleRate}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks that the signal is non-empty and has a positive rate.
func (s *Signal) Validate() error {
	if s == nil || len(s.Samples) == 0 {
		return ErrEmptySignal
	}

	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", core.ErrInvalidParameter, s.SampleRate)
	}

	return nil
}

// Len returns the sample count.
func (s *Signal) Len() int { return len(s.Samples) }

// Rate returns the sample rate as float64 for coefficient math.
func (s *Signal) Rate() float64 { return float64(s.SampleRate) }

// Time returns the time in seconds of sample n.
func (s *Signal) Time(n int) float64 { return float64(n) / float64(s.SampleRate) }

// Duration returns the signal length as a time.Duration.
func (s *Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// Clone returns a deep copy.
func (s *Signal) Clone() *Signal {
	out := make([]float64, len(s.Samples))
	copy(out, s.Samples)

	return &Signal{Samples: out, SampleRate: s.SampleRate}
}

// Derive wraps samples produced from s, keeping its sample rate.
func (s *Signal) Derive(samples []float64) *Signal {
	return &Signal{Samples: samples, SampleRate: s.SampleRate}
}

// Normalized returns a peak-normalized copy of s.
func (s *Signal) Normalized() (*Signal, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	out := s.Clone()
	if err := Normalize(out.Samples); err != nil {
		return nil, err
	}

	return out, nil
}
