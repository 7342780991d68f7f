// Package plotting renders degradation trends as PNG charts.
package plotting

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cwbudde/algo-telephone/telephone"
)

const (
	// Title heads the upper panel.
	Title = "Audio Entropy Chain"

	defaultWidth  = 10 * vg.Inch
	defaultHeight = 8 * vg.Inch
)

var (
	rmsColor  = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	freqColor = color.RGBA{R: 40, G: 80, B: 220, A: 255}
)

// PNG draws two vertically stacked panels sharing the stage axis: RMS
// energy on top and dominant frequency below.
type PNG struct {
	Width  vg.Length
	Height vg.Length
}

var _ telephone.Plotter = (*PNG)(nil)

// New returns a PNG plotter with a 10x8 inch canvas.
func New() *PNG {
	return &PNG{Width: defaultWidth, Height: defaultHeight}
}

// Plot writes the chart for trend to path, creating the parent directory.
func (p *PNG) Plot(ctx context.Context, trend telephone.Trend, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if trend.Len() == 0 {
		return telephone.ErrEmptyInputSet
	}

	rmsPanel, err := panel(trend.Stages, trend.RMS, "RMS Energy", "RMS", rmsColor, draw.CircleGlyph{})
	if err != nil {
		return err
	}
	rmsPanel.Title.Text = Title + ": The RMS Rampage"

	freqPanel, err := panel(trend.Stages, trend.Frequency, "Dominant Freq", "Frequency (Hz)", freqColor, draw.BoxGlyph{})
	if err != nil {
		return err
	}
	freqPanel.X.Label.Text = "Stage #"

	// Shared x domain.
	freqPanel.X.Min, freqPanel.X.Max = rmsPanel.X.Min, rmsPanel.X.Max

	img := vgimg.New(p.Width, p.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Points(8)}
	canvases := plot.Align([][]*plot.Plot{{rmsPanel}, {freqPanel}}, tiles, dc)
	rmsPanel.Draw(canvases[0][0])
	freqPanel.Draw(canvases[1][0])

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plotting: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("plotting: write png: %w", err)
	}
	return f.Close()
}

func panel(stages []int, values []float64, legend, yLabel string, c color.Color, shape draw.GlyphDrawer) (*plot.Plot, error) {
	if len(stages) != len(values) {
		return nil, fmt.Errorf("plotting: %d stages for %d values", len(stages), len(values))
	}
	pts := make(plotter.XYs, len(stages))
	for i := range stages {
		pts[i].X = float64(stages[i])
		pts[i].Y = values[i]
	}

	p := plot.New()
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("plotting: %s: %w", legend, err)
	}
	line.Color = c
	points.GlyphStyle.Color = c
	points.GlyphStyle.Shape = shape
	p.Add(line, points)
	p.Legend.Add(legend, line, points)
	p.Legend.Top = true

	return p, nil
}
