package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// MagnitudeFloor keeps the dB conversion of an empty bin finite.
const MagnitudeFloor = 1e-12

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)
	return out
}

// MagnitudeDB converts magnitudes in place to 20·log10(|X| + MagnitudeFloor).
func MagnitudeDB(mag []float64) {
	for i, m := range mag {
		mag[i] = 20 * math.Log10(m+MagnitudeFloor)
	}
}

// BinFrequencies returns the frequencies of the first n/2+1 bins of an
// n-point FFT at sampleRate, k·sampleRate/n.
func BinFrequencies(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n/2+1)
	for k := range out {
		out[k] = float64(k) * sampleRate / float64(n)
	}

	return out
}
