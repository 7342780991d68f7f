package telephone

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// memStore is an in-memory Store.
type memStore struct {
	mu    sync.Mutex
	waves map[StageID]Waveform
	saves []StageID
	fail  StageID
}

func newMemStore() *memStore {
	return &memStore{waves: make(map[StageID]Waveform), fail: -1}
}

func (s *memStore) Save(_ context.Context, id StageID, w Waveform) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == s.fail {
		return &StorageError{ID: id.String(), Op: "save", Err: fmt.Errorf("disk full")}
	}
	s.waves[id] = Waveform{Samples: slices.Clone(w.Samples), SampleRate: w.SampleRate}
	s.saves = append(s.saves, id)
	return nil
}

func (s *memStore) Load(_ context.Context, id StageID) (Waveform, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.waves[id]
	if !ok {
		return Waveform{}, &StorageError{ID: id.String(), Op: "load", Err: fmt.Errorf("not found")}
	}
	return w, nil
}

func (s *memStore) List(context.Context) ([]StageID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []StageID
	for id := range s.waves {
		if id > 0 {
			ids = append(ids, id)
		}
	}
	SortStageIDs(ids)
	return ids, nil
}

// recordingPlotter remembers every trend it was asked to draw.
type recordingPlotter struct {
	mu     sync.Mutex
	trends []Trend
	paths  []string
}

func (p *recordingPlotter) Plot(_ context.Context, trend Trend, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trends = append(p.trends, trend)
	p.paths = append(p.paths, path)
	return nil
}

// constSource returns the same normal variate forever.
type constSource float64

func (c constSource) NormFloat64() float64 { return float64(c) }

func seeded(seed int64) *int64 { return &seed }

// quietConfig is a short, noise-free, drift-free run.
func quietConfig(stages int) Config {
	cfg := DefaultConfig()
	cfg.Duration = 0.25
	cfg.StageCount = stages
	cfg.NoiseScale = 0
	cfg.PitchDriftAmp = 0
	cfg.Seed = seeded(1)
	cfg.Workers = 2
	return cfg
}
