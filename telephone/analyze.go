package telephone

import (
	"fmt"

	"github.com/cwbudde/algo-telephone/dsp/spectrum"
	"github.com/cwbudde/algo-telephone/dsp/window"
	"github.com/cwbudde/algo-telephone/stats/frequency"
	timestats "github.com/cwbudde/algo-telephone/stats/time"
)

// AnalysisResult holds the descriptors of one stored waveform.
type AnalysisResult struct {
	Stage             int
	RMS               float64
	DominantFrequency float64
	Peak              float64
	CrestFactor       float64
	Centroid          float64
	Flatness          float64
	// Rolloff is the frequency below which 85% of the spectral energy lies.
	Rolloff float64
	// SNR compares the dominant bin with every other bin, in dB.
	SNR float64
}

// Analyze measures w. The stage field is left at zero for the caller to set.
//
// The dominant frequency is the strongest bin of an exact-length DFT over
// bins [0, n/2), reported as bin*sampleRate/n. Ties resolve to the lowest bin.
// The spectral shape descriptors come from a Hann-tapered, zero-padded
// transform instead.
func Analyze(w Waveform) (AnalysisResult, error) {
	if w.Len() == 0 {
		return AnalysisResult{}, ErrEmptyWaveform
	}
	if !finitePositive(w.SampleRate) {
		return AnalysisResult{}, fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, w.SampleRate)
	}

	ts := timestats.Calculate(w.Samples)

	bins, err := spectrum.OneSided(w.Samples)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("telephone: analyze: %w", err)
	}
	exact := spectrum.Magnitude(bins)
	peak := spectrum.PeakBin(exact)
	dominant := spectrum.BinFrequency(peak, w.Len(), w.SampleRate)

	tapered := window.Apply(window.TypeHann, w.Samples, window.WithPeriodic())
	mag, _, err := spectrum.PaddedMagnitude(tapered)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("telephone: analyze: %w", err)
	}
	fs := frequency.Calculate(mag, w.SampleRate)

	return AnalysisResult{
		RMS:               ts.RMS,
		DominantFrequency: dominant,
		Peak:              ts.Peak,
		CrestFactor:       ts.CrestFactor,
		Centroid:          fs.Centroid,
		Flatness:          fs.Flatness,
		Rolloff:           fs.Rolloff,
		SNR:               spectrum.PeakSNR(exact, peak),
	}, nil
}
