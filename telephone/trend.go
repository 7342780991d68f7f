package telephone

import (
	"context"
	"fmt"
	"slices"
)

// Trend is the per-stage evolution of RMS and dominant frequency. The three
// slices are aligned and ordered by stage.
type Trend struct {
	Stages    []int
	RMS       []float64
	Frequency []float64
}

// Len returns the number of points in the trend.
func (t Trend) Len() int { return len(t.Stages) }

// NewTrend orders results by stage and flattens them into a Trend. It
// reports ErrEmptyInputSet for no results and rejects repeated stages.
func NewTrend(results []AnalysisResult) (Trend, error) {
	if len(results) == 0 {
		return Trend{}, ErrEmptyInputSet
	}

	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b AnalysisResult) int { return a.Stage - b.Stage })

	t := Trend{
		Stages:    make([]int, len(sorted)),
		RMS:       make([]float64, len(sorted)),
		Frequency: make([]float64, len(sorted)),
	}
	for i, r := range sorted {
		if i > 0 && sorted[i-1].Stage == r.Stage {
			return Trend{}, fmt.Errorf("%w: stage %d analyzed twice", ErrInvalidStageID, r.Stage)
		}
		t.Stages[i] = r.Stage
		t.RMS[i] = r.RMS
		t.Frequency[i] = r.DominantFrequency
	}
	return t, nil
}

// Plotter renders a trend to path.
type Plotter interface {
	Plot(ctx context.Context, trend Trend, path string) error
}

// PlotterFunc adapts a function to Plotter.
type PlotterFunc func(ctx context.Context, trend Trend, path string) error

// Plot calls f.
func (f PlotterFunc) Plot(ctx context.Context, trend Trend, path string) error {
	return f(ctx, trend, path)
}

// Reporter hands trends to a Plotter at a fixed destination.
type Reporter struct {
	plotter Plotter
	path    string
}

// NewReporter returns a Reporter writing to path.
func NewReporter(p Plotter, path string) *Reporter {
	return &Reporter{plotter: p, path: path}
}

// Path returns the chart destination.
func (r *Reporter) Path() string { return r.path }

// Report renders trend. An empty trend is rejected without touching the
// plotter.
func (r *Reporter) Report(ctx context.Context, trend Trend) error {
	if trend.Len() == 0 {
		return ErrEmptyInputSet
	}
	if len(trend.RMS) != trend.Len() || len(trend.Frequency) != trend.Len() {
		return fmt.Errorf("telephone: misaligned trend: %d stages, %d rms, %d frequency",
			trend.Len(), len(trend.RMS), len(trend.Frequency))
	}
	if r.plotter == nil {
		return nil
	}
	if err := r.plotter.Plot(ctx, trend, r.path); err != nil {
		return fmt.Errorf("telephone: plot %s: %w", r.path, err)
	}
	return nil
}
