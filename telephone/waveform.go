package telephone

// Waveform is a mono discrete-time signal in the [-1, 1] float domain.
// Stages never modify a Waveform in place; each produces a new one.
type Waveform struct {
	Samples    []float64
	SampleRate float64
}

// Len returns the number of samples.
func (w Waveform) Len() int { return len(w.Samples) }

// Duration returns the length in seconds.
func (w Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / w.SampleRate
}
