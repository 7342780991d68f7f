package telephone

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDriverRun(t *testing.T) {
	cfg := quietConfig(3)
	d, err := NewDegrader(cfg)
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	store := newMemStore()
	driver, err := NewDriver(d, cfg.StageCount, WithSaver(store), WithLogger(zap.New(core)))
	require.NoError(t, err)

	src, err := Generate(cfg)
	require.NoError(t, err)

	chain, err := driver.Run(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, chain, 4)
	for i, link := range chain {
		assert.Equal(t, i, link.Stage)
		assert.Equal(t, cfg.SampleCount(), link.Waveform.Len())
	}
	assert.Equal(t, src.Samples, chain[0].Waveform.Samples)
	assert.Equal(t, chain[3].Waveform.Samples, chain.Final().Samples)

	assert.Equal(t, []StageID{0, 1, 2, 3}, store.saves)

	entries := logs.FilterMessage("stage generated").All()
	require.Len(t, entries, 4)
	assert.EqualValues(t, 7700.0, entries[1].ContextMap()["cutoff_hz"])
	assert.EqualValues(t, 7100.0, entries[3].ContextMap()["cutoff_hz"])
}

func TestDriverRunWithoutSaver(t *testing.T) {
	cfg := quietConfig(2)
	d, err := NewDegrader(cfg)
	require.NoError(t, err)
	driver, err := NewDriver(d, cfg.StageCount)
	require.NoError(t, err)

	src, err := Generate(cfg)
	require.NoError(t, err)
	chain, err := driver.Run(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, chain, 3)
}

func TestDriverAbortsOnStorageError(t *testing.T) {
	cfg := quietConfig(3)
	d, err := NewDegrader(cfg)
	require.NoError(t, err)

	store := newMemStore()
	store.fail = 2
	driver, err := NewDriver(d, cfg.StageCount, WithSaver(store))
	require.NoError(t, err)

	src, err := Generate(cfg)
	require.NoError(t, err)
	chain, err := driver.Run(context.Background(), src)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Nil(t, chain)
	assert.Equal(t, []StageID{0, 1}, store.saves)
}

func TestDriverHonorsCancellation(t *testing.T) {
	cfg := quietConfig(3)
	d, err := NewDegrader(cfg)
	require.NoError(t, err)
	driver, err := NewDriver(d, cfg.StageCount)
	require.NoError(t, err)

	src, err := Generate(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = driver.Run(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDriverValidates(t *testing.T) {
	_, err := NewDriver(nil, 3)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	d, err := NewDegrader(quietConfig(1))
	require.NoError(t, err)
	_, err = NewDriver(d, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewDriver(d, 1)
	require.NoError(t, err)
}
