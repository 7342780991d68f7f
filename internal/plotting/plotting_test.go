package plotting

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-telephone/telephone"
)

func TestPlotWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "plot.png")
	trend := telephone.Trend{
		Stages:    []int{1, 2, 3},
		RMS:       []float64{0.42, 0.40, 0.37},
		Frequency: []float64{440, 440.5, 437},
	}

	require.NoError(t, New().Plot(context.Background(), trend, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestPlotRejectsEmptyTrend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	err := New().Plot(context.Background(), telephone.Trend{}, path)
	assert.ErrorIs(t, err, telephone.ErrEmptyInputSet)
	assert.NoFileExists(t, path)
}

func TestPlotMisaligned(t *testing.T) {
	trend := telephone.Trend{Stages: []int{1, 2}, RMS: []float64{1}, Frequency: []float64{1, 2}}
	assert.Error(t, New().Plot(context.Background(), trend, filepath.Join(t.TempDir(), "p.png")))
}
