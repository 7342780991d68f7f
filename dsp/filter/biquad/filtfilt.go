package biquad

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when FiltFilt receives no samples.
var ErrEmptyInput = errors.New("biquad: empty input")

// PadLen returns the default edge-padding length used by FiltFilt for a
// cascade of the given number of sections: three times the number of taps
// of the combined transfer function.
func PadLen(sections int) int {
	return 3 * (2*sections + 1)
}

// FiltFilt applies coeffs to x forward and then backward, producing a
// zero-phase result with squared magnitude response. x is not modified.
//
// The signal is extended at both ends by odd reflection and each pass starts
// from the steady state of its first sample, which suppresses edge
// transients. The padding is shortened for signals too short to hold it.
func FiltFilt(coeffs []Coefficients, x []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("biquad: filtfilt needs at least one section")
	}

	pad := PadLen(len(coeffs))
	if pad > n-1 {
		pad = n - 1
	}

	ext := oddExtend(x, pad)
	chain := NewChain(coeffs)

	chain.SteadyState(ext[0])
	chain.ProcessBlock(ext)

	reverse(ext)
	chain.SteadyState(ext[0])
	chain.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[pad:pad+n])

	return out, nil
}

// oddExtend returns x with pad samples of odd reflection on both sides:
// 2*x[0]-x[pad..1] before and 2*x[n-1]-x[n-2..n-1-pad] after.
func oddExtend(x []float64, pad int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*pad)
	first, last := x[0], x[n-1]
	for i := 0; i < pad; i++ {
		ext[i] = 2*first - x[pad-i]
		ext[pad+n+i] = 2*last - x[n-2-i]
	}
	copy(ext[pad:], x)

	return ext
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
