package wavstore

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-telephone/telephone"
)

func tone(n int) telephone.Waveform {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}
	return telephone.Waveform{Samples: samples, SampleRate: 44100}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(filepath.Join(t.TempDir(), "out"))

	in := tone(4410)
	in.Samples[10] = 1.5
	in.Samples[11] = -1
	require.NoError(t, s.Save(ctx, 3, in))
	assert.FileExists(t, filepath.Join(s.Dir(), "stage_3.wav"))

	out, err := s.Load(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, in.Len(), out.Len())
	assert.InDelta(t, 44100.0, out.SampleRate, 0)

	for i := range in.Samples {
		want := math.Max(-1, math.Min(1, in.Samples[i]))
		require.InDelta(t, want, out.Samples[i], 1.0/32767)
	}
	assert.InDelta(t, 1.0, out.Samples[10], 0)
	assert.InDelta(t, -1.0, out.Samples[11], 0)
}

func TestSaveOriginalName(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save(context.Background(), 0, tone(100)))
	assert.FileExists(t, filepath.Join(s.Dir(), "original.wav"))
	assert.Equal(t, filepath.Join(s.Dir(), "stage_12.wav"), s.Path(12))
}

func TestListNumericOrder(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())
	for _, id := range []telephone.StageID{0, 10, 2, 1} {
		require.NoError(t, s.Save(ctx, id, tone(64)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "stage_x.wav"), nil, 0o600))

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []telephone.StageID{1, 2, 10}, ids)
}

func TestListMissingDir(t *testing.T) {
	ids, err := New(filepath.Join(t.TempDir(), "nope")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	_, err := s.Load(ctx, 4)
	assert.ErrorIs(t, err, telephone.ErrStorage)

	require.NoError(t, os.WriteFile(s.Path(5), []byte("not audio"), 0o600))
	_, err = s.Load(ctx, 5)
	assert.ErrorIs(t, err, telephone.ErrStorage)
}

func TestSaveIntoFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := New(blocker).Save(context.Background(), 1, tone(16))
	var serr *telephone.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "mkdir", serr.Op)
}
