package frequency

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// makeSingleBinSpectrum creates a spectrum of given length with a single
// non-zero bin at the specified index.
func makeSingleBinSpectrum(n, bin int, amplitude float64) []float64 {
	mag := make([]float64, n)
	if bin >= 0 && bin < n {
		mag[bin] = amplitude
	}
	return mag
}

// makeFlatSpectrum creates a spectrum where all bins have the same magnitude.
func makeFlatSpectrum(n int, amplitude float64) []float64 {
	mag := make([]float64, n)
	for i := range mag {
		mag[i] = amplitude
	}
	return mag
}

func TestCalculateShortInput(t *testing.T) {
	s := Calculate([]float64{1}, 48000)
	if s.BinCount != 1 || s.Centroid != 0 || s.Flatness != 0 {
		t.Fatalf("unexpected stats for single bin: %+v", s)
	}
}

func TestCentroidSingleBin(t *testing.T) {
	// 9 bins -> fftSize 16; bin 4 at 8000 Hz sample rate is 2000 Hz.
	mag := makeSingleBinSpectrum(9, 4, 1)
	if got := Centroid(mag, 8000); !almostEqual(got, 2000, tolerance) {
		t.Fatalf("Centroid = %v, want 2000", got)
	}

	s := Calculate(mag, 8000)
	if !almostEqual(s.Centroid, 2000, tolerance) {
		t.Fatalf("Stats.Centroid = %v, want 2000", s.Centroid)
	}
	if !almostEqual(s.Spread, 0, tolerance) {
		t.Fatalf("Stats.Spread = %v, want 0", s.Spread)
	}
	if !almostEqual(s.Rolloff, 2000, tolerance) {
		t.Fatalf("Stats.Rolloff = %v, want 2000", s.Rolloff)
	}
}

func TestFlatness(t *testing.T) {
	if got := Flatness(makeFlatSpectrum(16, 0.3)); !almostEqual(got, 1, tolerance) {
		t.Fatalf("flat spectrum flatness = %v, want 1", got)
	}
	if got := Flatness(makeSingleBinSpectrum(16, 3, 1)); got != 0 {
		t.Fatalf("tonal spectrum flatness = %v, want 0", got)
	}
	if got := Flatness(make([]float64, 8)); got != 0 {
		t.Fatalf("silent spectrum flatness = %v, want 0", got)
	}
}

func TestRolloffFlat(t *testing.T) {
	// 11 bins over 0..5000 Hz; 85% of equal energies is reached at bin 9.
	mag := makeFlatSpectrum(11, 1)
	if got := Rolloff(mag, 10000, 0.85); !almostEqual(got, 4500, tolerance) {
		t.Fatalf("Rolloff = %v, want 4500", got)
	}
}
