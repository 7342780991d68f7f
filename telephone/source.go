package telephone

import (
	"fmt"

	"github.com/cwbudde/algo-telephone/dsp/core"
	"github.com/cwbudde/algo-telephone/dsp/signal"
)

// SourceAmplitude is the peak level of the clean stage-0 tone.
const SourceAmplitude = 0.5

// Generate produces the stage-0 waveform: a sine at cfg.OriginalFrequency
// with amplitude 0.5, cfg.SampleCount() samples long.
func Generate(cfg Config) (Waveform, error) {
	if err := cfg.Validate(); err != nil {
		return Waveform{}, err
	}

	gen := signal.NewGenerator(core.WithSampleRate(cfg.SampleRate))
	samples, err := gen.Sine(cfg.OriginalFrequency, SourceAmplitude, cfg.SampleCount())
	if err != nil {
		return Waveform{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return Waveform{Samples: samples, SampleRate: cfg.SampleRate}, nil
}
