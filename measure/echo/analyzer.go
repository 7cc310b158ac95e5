package echo

import "math"

// Metrics holds echo impulse response analysis results.
type Metrics struct {
	Taps       []Tap
	Ratios     []float64
	MeanRatio  float64 // mean of Ratios, 0 with fewer than two taps
	DecayTime  float64 // seconds to -60 dB, 0 if the response does not decay
	CenterTime float64 // energy centroid in seconds
}

// Analyzer computes echo metrics from impulse response data.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an echo analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze locates the taps of ir at the given spacing and computes the
// decay metrics.
func (a *Analyzer) Analyze(ir []float64, spacing int) (Metrics, error) {
	taps, ratios, err := Peaks(ir, spacing, a.SampleRate)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		Taps:       taps,
		Ratios:     ratios,
		CenterTime: a.centerTime(ir),
		DecayTime:  a.decayTime(a.schroederIntegral(ir), -5, -35),
	}

	if len(ratios) > 0 {
		var sum float64
		for _, r := range ratios {
			sum += r
		}

		m.MeanRatio = sum / float64(len(ratios))
	}

	return m, nil
}

// DecayTime returns the -60 dB decay time of ir extrapolated from the
// -5..-35 dB range of its Schroeder curve.
func (a *Analyzer) DecayTime(ir []float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	t := a.decayTime(a.schroederIntegral(ir), -5, -35)
	if t <= 0 {
		return 0, ErrNoDecay
	}

	return t, nil
}

// SchroederIntegral returns the backward-integrated energy of ir in dB
// relative to its total energy.
//
// S(t) = 10*log10( ∫_t^∞ h²(τ) dτ / ∫_0^∞ h²(τ) dτ )
func (a *Analyzer) SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return a.schroederIntegral(ir), nil
}

func (a *Analyzer) schroederIntegral(ir []float64) []float64 {
	n := len(ir)
	result := make([]float64, n)

	var cumSum float64
	for i := n - 1; i >= 0; i-- {
		cumSum += ir[i] * ir[i]
		result[i] = cumSum
	}

	total := result[0]
	if total <= 0 {
		return result
	}

	for i := range result {
		ratio := result[i] / total
		if ratio <= 0 {
			result[i] = -200
		} else {
			result[i] = 10 * math.Log10(ratio)
		}
	}

	return result
}

// decayTime fits a line to the Schroeder curve between startDB and endDB
// and extrapolates it to -60 dB.
func (a *Analyzer) decayTime(schroeder []float64, startDB, endDB float64) float64 {
	if len(schroeder) == 0 || a.SampleRate <= 0 {
		return 0
	}

	startIdx, endIdx := -1, -1

	for i, v := range schroeder {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}

		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}

	if startIdx < 0 || endIdx <= startIdx {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64

	for i := startIdx; i <= endIdx; i++ {
		x := float64(i - startIdx)
		y := schroeder[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	nf := float64(endIdx - startIdx + 1)

	denom := nf*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (nf*sumXY - sumX*sumY) / denom
	if slope >= 0 {
		return 0
	}

	return -60.0 / (slope * a.SampleRate)
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var num, den float64

	for i, v := range ir {
		e := v * v
		num += float64(i) / a.SampleRate * e
		den += e
	}

	if den <= 0 {
		return 0
	}

	return num / den
}
