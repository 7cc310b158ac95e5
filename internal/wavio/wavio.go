// Package wavio reads and writes mono signals as WAV files.
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

// BitDepth is the PCM resolution written by Save.
const BitDepth = 24

var (
	// ErrNotWAV is returned for files without a RIFF/WAVE header.
	ErrNotWAV = errors.New("wavio: not a WAV file")
	// ErrUnsupportedFormat is returned for non-PCM encodings.
	ErrUnsupportedFormat = errors.New("wavio: unsupported WAV encoding")
	// ErrSampleRateMismatch is returned when a file's rate differs from the
	// processing rate.
	ErrSampleRateMismatch = errors.New("wavio: sample rate mismatch")
)

// Load decodes the first channel of a PCM WAV file and peak-normalizes it.
// The file must be at sampleRate.
func Load(path string, sampleRate int) (*signal.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrNotWAV, path)
	}

	if dec.WavAudioFormat != 1 {
		return nil, fmt.Errorf("%w: %s has format tag %d", ErrUnsupportedFormat, path, dec.WavAudioFormat)
	}

	if int(dec.SampleRate) != sampleRate {
		return nil, fmt.Errorf("%w: %s is %d Hz, want %d Hz", ErrSampleRateMismatch, path, dec.SampleRate, sampleRate)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode %s: %w", path, err)
	}

	channels := max(1, int(dec.NumChans))
	frames := len(buf.Data) / channels

	if frames == 0 {
		return nil, fmt.Errorf("%s: %w", path, signal.ErrEmptySignal)
	}

	scale := 1 / math.Pow(2, float64(dec.BitDepth)-1)

	samples := make([]float64, frames)
	for i := range samples {
		samples[i] = float64(buf.Data[i*channels]) * scale
	}

	return signal.Finish(samples, sampleRate)
}

// Save writes s to path as normalized mono 24-bit PCM. s is not modified.
func Save(path string, s *signal.Signal) error {
	if err := s.Validate(); err != nil {
		return err
	}

	normalized := make([]float64, s.Len())
	copy(normalized, s.Samples)

	if err := signal.Normalize(normalized); err != nil {
		return err
	}

	full := math.Pow(2, BitDepth-1) - 1

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  s.SampleRate,
		},
		Data:           make([]int, len(normalized)),
		SourceBitDepth: BitDepth,
	}

	for i, v := range normalized {
		buf.Data[i] = int(math.Round(v * full))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, s.SampleRate, BitDepth, 1, 1)
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("wavio: encode %s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("wavio: finalize %s: %w", path, err)
	}

	return f.Close()
}
