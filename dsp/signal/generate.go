package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-telephone/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// NormSource draws standard normal variates. *rand.Rand satisfies it.
type NormSource interface {
	NormFloat64() float64
}

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed used by NewSource.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the configured seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// NewSource returns a fresh random source seeded with the generator seed.
func (g *Generator) NewSource() *rand.Rand {
	return rand.New(rand.NewSource(g.seed))
}

// Samples returns the sample count covering durationSec at the configured
// sample rate, rounded to the nearest integer.
func (g *Generator) Samples(durationSec float64) int {
	return int(math.Round(durationSec * g.cfg.SampleRate))
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// GaussianNoise draws samples from N(0, stddev^2) using src.
// A zero stddev yields silence without consuming the source.
func GaussianNoise(src NormSource, stddev float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if stddev < 0 || math.IsNaN(stddev) {
		return nil, fmt.Errorf("noise stddev must be >= 0: %f", stddev)
	}
	out := make([]float64, samples)
	if stddev == 0 {
		return out, nil
	}
	if src == nil {
		return nil, fmt.Errorf("noise source must not be nil")
	}
	for i := range out {
		out[i] = src.NormFloat64() * stddev
	}
	return out, nil
}

// Mix returns wa*a + wb*b as a new slice. Both inputs must have equal length.
func Mix(a []float64, wa float64, b []float64, wb float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("mix length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return nil, fmt.Errorf("mix input must not be empty")
	}
	out := make([]float64, len(a))
	tmp := make([]float64, len(b))
	vecmath.ScaleBlock(out, a, wa)
	vecmath.ScaleBlock(tmp, b, wb)
	vecmath.AddBlockInPlace(out, tmp)
	return out, nil
}

// Clip hard-limits data to [lo, hi] and returns a new slice.
func Clip(data []float64, lo, hi float64) ([]float64, error) {
	if lo > hi {
		return nil, fmt.Errorf("clip range invalid: [%f, %f]", lo, hi)
	}
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = core.Clamp(v, lo, hi)
	}
	return out, nil
}

// Peak returns max(|x|) over data, or 0 for an empty slice.
func Peak(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}
