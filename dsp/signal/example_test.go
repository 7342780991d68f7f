package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-telephone/dsp/core"
	"github.com/cwbudde/algo-telephone/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator(core.WithSampleRate(1000))
	x, err := g.Sine(250, 0.5, 5)
	if err != nil {
		panic(err)
	}
	if math.Abs(x[4]) < 1e-12 {
		x[4] = 0
	}

	fmt.Printf("%.1f %.1f %.1f %.1f %.1f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0.0 0.5 0.0 -0.5 0.0
}

func ExampleClip() {
	x, err := signal.Clip([]float64{-1.5, 0.25, 3}, -1, 1)
	if err != nil {
		panic(err)
	}
	fmt.Println(x)

	// Output:
	// [-1 0.25 1]
}
