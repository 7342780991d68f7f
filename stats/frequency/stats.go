// Package frequency computes spectral shape descriptors from a one-sided
// magnitude spectrum.
package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultRolloffPercent is the energy fraction used by [Calculate].
const DefaultRolloffPercent = 0.85

// Stats holds spectral shape descriptors computed from a magnitude spectrum.
type Stats struct {
	BinCount int
	Centroid float64 // spectral centroid (Hz)
	Spread   float64 // spectral spread (Hz)
	Flatness float64 // spectral flatness (Wiener entropy), 0..1
	Rolloff  float64 // frequency below which 85% of energy lies (Hz)
}

// binFreq returns the frequency in Hz of a given bin index.
// fftSize = 2 * (len(magnitude) - 1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Calculate computes all descriptors from a magnitude spectrum (linear
// scale, NOT dB).
//
// The magnitude slice represents bins from 0 (DC) to Nyquist (one-sided
// spectrum, length = FFTSize/2 + 1). The frequency of bin i is:
//
//	f_i = i * sampleRate / (2 * (len(magnitude) - 1))
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	if n < 2 {
		return Stats{BinCount: n}
	}

	sumMag := floats.Sum(magnitude)
	cent := centroid(magnitude, sampleRate, sumMag)

	return Stats{
		BinCount: n,
		Centroid: cent,
		Spread:   spread(magnitude, sampleRate, cent, sumMag),
		Flatness: Flatness(magnitude),
		Rolloff:  Rolloff(magnitude, sampleRate, DefaultRolloffPercent),
	}
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}
	return centroid(magnitude, sampleRate, floats.Sum(magnitude))
}

func centroid(magnitude []float64, sampleRate float64, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}
	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += binFreq(i, sampleRate, n) * v
	}
	return weightedSum / sumMag
}

// spread computes the standard deviation of the spectrum around the centroid.
func spread(magnitude []float64, sampleRate float64, cent float64, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := binFreq(i, sampleRate, n) - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
//	Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// DC bin (index 0) is excluded. If any considered bin is zero, 0 is returned.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	bins := magnitude[1:]
	meanLin := floats.Sum(bins) / float64(len(bins))
	if meanLin == 0 {
		return 0
	}

	sumLog := 0.0
	for _, v := range bins {
		if v <= 0 {
			return 0
		}
		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/float64(len(bins))) / meanLin
}

// Rolloff returns the frequency below which the specified fraction (0..1) of
// spectral energy lies. Energy is the sum of squared magnitudes.
func Rolloff(magnitude []float64, sampleRate float64, percent float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}
	total := floats.Dot(magnitude, magnitude)
	if total == 0 {
		return 0
	}

	threshold := percent * total
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}
	return binFreq(n-1, sampleRate, n)
}
