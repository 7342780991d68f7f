package telephone

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-telephone/dsp/core"
	"github.com/cwbudde/algo-telephone/dsp/filter/biquad"
	"github.com/cwbudde/algo-telephone/dsp/filter/design"
	"github.com/cwbudde/algo-telephone/dsp/signal"
	"gonum.org/v1/gonum/floats"
)

const (
	// LowpassOrder is the Butterworth order applied at every stage.
	LowpassOrder = 4

	cutoffStart = 8000.0
	cutoffStep  = 300.0
	cutoffFloor = 1000.0

	driftRate = 0.3

	filteredWeight = 0.7
	driftWeight    = 0.3
)

// Cutoff returns the low-pass corner for stage: 8000 Hz minus 300 Hz per
// stage, never below 1000 Hz.
func Cutoff(stage int) float64 {
	return math.Max(cutoffFloor, cutoffStart-cutoffStep*float64(stage))
}

// Degrader applies one telephone hop to a waveform.
//
// The noise source is consumed sequentially, so a Degrader must not be shared
// between goroutines.
type Degrader struct {
	cfg   Config
	seed  int64
	noise signal.NormSource
}

// DegraderOption configures a Degrader.
type DegraderOption func(*Degrader)

// WithNoiseSource replaces the seeded Gaussian source.
func WithNoiseSource(src signal.NormSource) DegraderOption {
	return func(d *Degrader) {
		if src != nil {
			d.noise = src
		}
	}
}

// NewDegrader validates cfg and seeds the noise source from cfg.Seed, or from
// the clock when no seed is configured.
func NewDegrader(cfg Config, opts ...DegraderOption) (*Degrader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(cfg.SampleRate)},
		signal.WithSeed(seed),
	)

	d := &Degrader{cfg: cfg, seed: seed, noise: gen.NewSource()}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// Seed returns the seed the default noise source was created with.
func (d *Degrader) Seed() int64 { return d.seed }

// NoiseSigma returns the noise standard deviation at stage.
func (d *Degrader) NoiseSigma(stage int) float64 {
	return float64(stage) * d.cfg.NoiseScale
}

// DriftFactor returns the multiplier applied to the reference frequency.
func (d *Degrader) DriftFactor(stage int) float64 {
	return 1 + math.Sin(driftRate*float64(stage))*d.cfg.PitchDriftAmp
}

// Degrade returns
//
//	clip(0.7*(lowpass(in) + noise) + 0.3*sin(2*pi*f*drift*t), -1, 1)
//
// where lowpass is a zero-phase 4th-order Butterworth at Cutoff(stage). The
// input is left untouched.
func (d *Degrader) Degrade(in Waveform, stage int) (Waveform, error) {
	if stage < 1 {
		return Waveform{}, fmt.Errorf("%w: %d", ErrInvalidStage, stage)
	}
	if in.Len() == 0 {
		return Waveform{}, ErrEmptyWaveform
	}
	sampleRate := in.SampleRate
	if sampleRate <= 0 {
		sampleRate = d.cfg.SampleRate
	}

	cutoff := Cutoff(stage)
	sections, err := design.LowpassCascade(cutoff, LowpassOrder, sampleRate)
	if err != nil {
		return Waveform{}, fmt.Errorf("%w: stage %d: %w", ErrFilterInstability, stage, err)
	}
	filtered, err := biquad.FiltFilt(sections, in.Samples)
	if err != nil {
		return Waveform{}, fmt.Errorf("%w: stage %d: %w", ErrFilterInstability, stage, err)
	}
	if !core.AllFinite(filtered) {
		return Waveform{}, fmt.Errorf("%w: stage %d: non-finite output at %.0f Hz",
			ErrFilterInstability, stage, cutoff)
	}

	noise, err := signal.GaussianNoise(d.noise, d.NoiseSigma(stage), in.Len())
	if err != nil {
		return Waveform{}, fmt.Errorf("telephone: stage %d noise: %w", stage, err)
	}
	floats.Add(filtered, noise)

	gen := signal.NewGenerator(core.WithSampleRate(sampleRate))
	drifted, err := gen.Sine(d.cfg.OriginalFrequency*d.DriftFactor(stage), 1, in.Len())
	if err != nil {
		return Waveform{}, fmt.Errorf("telephone: stage %d drift: %w", stage, err)
	}

	mixed, err := signal.Mix(filtered, filteredWeight, drifted, driftWeight)
	if err != nil {
		return Waveform{}, fmt.Errorf("telephone: stage %d blend: %w", stage, err)
	}
	out, err := signal.Clip(mixed, -1, 1)
	if err != nil {
		return Waveform{}, fmt.Errorf("telephone: stage %d clip: %w", stage, err)
	}
	return Waveform{Samples: out, SampleRate: sampleRate}, nil
}
