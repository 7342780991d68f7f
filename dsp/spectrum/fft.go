package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mjibson/go-dsp/fft"
)

// ErrEmptySignal is returned for zero-length input.
var ErrEmptySignal = errors.New("spectrum: empty signal")

// OneSided returns the non-negative-frequency half of the DFT of x: bins
// 0..len(x)/2-1, excluding Nyquist and the mirrored half. The transform has
// exactly len(x) points, so no zero padding alters the bin spacing.
func OneSided(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptySignal
	}
	if n == 1 {
		return []complex128{complex(x[0], 0)}, nil
	}

	return fft.FFTReal(x)[:n/2], nil
}

// PaddedMagnitude zero-pads x to the next power of two and returns the
// magnitude of bins 0..N/2 (DC through Nyquist) along with N.
func PaddedMagnitude(x []float64) ([]float64, int, error) {
	if len(x) == 0 {
		return nil, 0, ErrEmptySignal
	}

	size := NextPowerOf2(len(x))
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, 0, fmt.Errorf("spectrum: fft plan %d: %w", size, err)
	}

	in := make([]complex128, size)
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, 0, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	return Magnitude(out[:size/2+1]), size, nil
}

// NextPowerOf2 returns the smallest power of two >= n.
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
