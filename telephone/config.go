package telephone

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds every static knob of a run. It is read once at start.
type Config struct {
	SampleRate        float64 `yaml:"sampleRate"`
	Duration          float64 `yaml:"duration"`
	StageCount        int     `yaml:"stageCount"`
	OriginalFrequency float64 `yaml:"originalFrequency"`
	NoiseScale        float64 `yaml:"noiseScale"`
	PitchDriftAmp     float64 `yaml:"pitchDriftAmp"`
	OutputDirectory   string  `yaml:"outputDirectory"`
	PlotFile          string  `yaml:"plotFile"`
	// Seed fixes the noise source. Nil draws a fresh seed per run.
	Seed     *int64 `yaml:"seed,omitempty"`
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"logLevel"`
}

// DefaultConfig returns the reference parameters: a 2 s, 440 Hz tone at
// 44.1 kHz passed through 20 stages.
func DefaultConfig() Config {
	return Config{
		SampleRate:        44100,
		Duration:          2.0,
		StageCount:        20,
		OriginalFrequency: 440,
		NoiseScale:        0.03,
		PitchDriftAmp:     0.03,
		OutputDirectory:   "outputs",
		PlotFile:          "degradation_plot.png",
		Workers:           runtime.NumCPU(),
		LogLevel:          "info",
	}
}

// SampleCount returns the number of samples per waveform.
func (c Config) SampleCount() int {
	return int(math.Round(c.Duration * c.SampleRate))
}

// PlotPath returns the chart location inside the output directory.
func (c Config) PlotPath() string {
	return filepath.Join(c.OutputDirectory, c.PlotFile)
}

// Validate checks c and returns an error wrapping ErrInvalidConfig that
// lists every violation.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(finitePositive(c.SampleRate), "sampleRate must be > 0: %v", c.SampleRate)
	check(finitePositive(c.Duration), "duration must be > 0: %v", c.Duration)
	check(c.StageCount > 0, "stageCount must be > 0: %d", c.StageCount)
	check(finitePositive(c.OriginalFrequency), "originalFrequency must be > 0: %v", c.OriginalFrequency)
	check(c.NoiseScale >= 0 && !math.IsInf(c.NoiseScale, 0), "noiseScale must be >= 0: %v", c.NoiseScale)
	check(c.PitchDriftAmp >= 0 && !math.IsInf(c.PitchDriftAmp, 0), "pitchDriftAmp must be >= 0: %v", c.PitchDriftAmp)
	check(c.OutputDirectory != "", "outputDirectory must not be empty")
	check(c.PlotFile != "", "plotFile must not be empty")
	check(c.Workers >= 0, "workers must be >= 0: %d", c.Workers)
	if len(errs) == 0 && c.SampleCount() < 1 {
		errs = append(errs, fmt.Errorf("duration %v s holds no samples at %v Hz", c.Duration, c.SampleRate))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// LoadConfig reads a YAML file over DefaultConfig. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig. Empty input yields the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: decode yaml: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
