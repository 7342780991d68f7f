package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

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

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
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
	putScratch(buf)
	return out
}

// PeakBin returns the index of the largest value in mag. Ties resolve to the
// lowest index. It returns -1 for an empty slice.
func PeakBin(mag []float64) int {
	if len(mag) == 0 {
		return -1
	}
	return floats.MaxIdx(mag)
}

// BinFrequency returns the centre frequency in Hz of bin k for a transform
// of fftSize points.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(fftSize)
}

// PeakSNR returns the ratio in dB between the power of bin peak and the power
// of all other bins in mag. It is +Inf when every other bin is silent and
// -Inf when the peak itself is.
func PeakSNR(mag []float64, peak int) float64 {
	if peak < 0 || peak >= len(mag) {
		return math.NaN()
	}

	signal := mag[peak] * mag[peak]
	total := floats.Dot(mag, mag)
	noise := total - signal
	if signal == 0 {
		return math.Inf(-1)
	}
	if noise <= 0 {
		return math.Inf(1)
	}

	return 10 * math.Log10(signal/noise)
}
