// Package echo measures the impulse response of the tape echo.
//
// ImpulseResponse feeds a unit impulse through the unnormalized echo
// recursion. Peaks locates the repeats and the ratio between successive
// repeats, and Analyzer derives decay figures from the Schroeder backward
// integral of the response:
//
//   - Taps: index, time and amplitude of each repeat
//   - MeanRatio: average amplitude ratio between successive repeats
//   - DecayTime: time for a -60 dB decay, extrapolated from the -5..-35 dB slope
//   - CenterTime: temporal energy centroid
//
// # Usage
//
//	fx, _ := effects.NewTapeEcho()
//	ir, _ := echo.ImpulseResponse(fx, echo.DefaultDuration, 48000)
//	metrics, err := echo.NewAnalyzer(48000).Analyze(ir, 5760)
//	fmt.Printf("ratio = %.2f, decay = %.2f s\n", metrics.MeanRatio, metrics.DecayTime)
package echo
