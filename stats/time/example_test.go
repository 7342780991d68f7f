package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-telephone/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{0.5, -0.5, 0.5, -0.5})
	fmt.Printf("rms=%.2f peak=%.2f crest=%.1f\n", s.RMS, s.Peak, s.CrestFactor)

	// Output:
	// rms=0.50 peak=0.50 crest=1.0
}
