package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-hendrix/dsp/effects"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
)

func ExampleTapeEcho_ProcessInPlace() {
	echo, err := effects.NewTapeEcho(
		effects.WithTapeEchoDelayMs(1),
		effects.WithTapeEchoFeedback(0.5),
		effects.WithTapeEchoHFLoss(1),
	)
	if err != nil {
		fmt.Println("error")
		return
	}

	buf := make([]float64, 150)
	buf[0] = 1

	if err := echo.ProcessInPlace(buf, 48000); err != nil {
		fmt.Println("error")
		return
	}

	fmt.Printf("%.2f %.2f %.2f\n", buf[0], buf[48], buf[96])
	// Output:
	// 1.00 0.50 0.25
}

func ExampleBitCrusher_Process() {
	crusher, err := effects.NewBitCrusher(
		effects.WithBitCrusherBitDepth(4),
		effects.WithBitCrusherDownsample(2),
	)
	if err != nil {
		fmt.Println("error")
		return
	}

	in, _ := signal.New([]float64{1, 0, 0.5, 0, -0.2, 0}, 48000)
	out, _ := crusher.Process(in)

	fmt.Printf("len=%d %.3f %.3f %.3f\n", out.Len(), out.Samples[0], out.Samples[1], out.Samples[2])
	// Output:
	// len=3 1.000 0.571 -0.143
}
