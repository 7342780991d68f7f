// Package wavstore persists stage waveforms as mono 16-bit PCM WAV files.
package wavstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-telephone/dsp/core"
	"github.com/cwbudde/algo-telephone/telephone"
)

const (
	bitDepth  = 16
	fullScale = 32767
	pcmFormat = 1
	ext       = ".wav"
)

var errInvalidFile = errors.New("not a valid wav file")

// Store keeps one file per stage in a directory: original.wav for stage 0
// and stage_<n>.wav for the degraded stages.
type Store struct {
	dir string
}

var _ telephone.Store = (*Store)(nil)

// New returns a Store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the storage directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the file that holds id.
func (s *Store) Path(id telephone.StageID) string {
	return filepath.Join(s.dir, id.String()+ext)
}

// Save writes w as 16-bit PCM. Samples are clamped to [-1, 1] and scaled by
// 32767 with truncation toward zero.
func (s *Store) Save(ctx context.Context, id telephone.StageID, w telephone.Waveform) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &telephone.StorageError{ID: id.String(), Op: "mkdir", Err: err}
	}

	path := s.Path(id)
	if err := writeWAV(path, w); err != nil {
		return &telephone.StorageError{ID: path, Op: "save", Err: err}
	}
	return nil
}

func writeWAV(path string, w telephone.Waveform) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	sampleRate := int(w.SampleRate)
	data := make([]int, len(w.Samples))
	for i, v := range w.Samples {
		data[i] = int(core.Clamp(v, -1, 1) * fullScale)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Load reads id back and normalizes samples by 32767. Multi-channel files
// yield their first channel.
func (s *Store) Load(ctx context.Context, id telephone.StageID) (telephone.Waveform, error) {
	if err := ctx.Err(); err != nil {
		return telephone.Waveform{}, err
	}
	path := s.Path(id)
	w, err := readWAV(path)
	if err != nil {
		return telephone.Waveform{}, &telephone.StorageError{ID: path, Op: "load", Err: err}
	}
	return w, nil
}

func readWAV(path string) (telephone.Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return telephone.Waveform{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return telephone.Waveform{}, errInvalidFile
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return telephone.Waveform{}, fmt.Errorf("decode: %w", err)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		channels = 1
	}
	samples := make([]float64, len(buf.Data)/channels)
	for i := range samples {
		samples[i] = float64(buf.Data[i*channels]) / fullScale
	}
	return telephone.Waveform{Samples: samples, SampleRate: float64(dec.SampleRate)}, nil
}

// List returns the stored degraded stages in numeric order. Files whose
// names carry no stage index are skipped. A missing directory lists nothing.
func (s *Store) List(ctx context.Context) ([]telephone.StageID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, "stage_*"+ext))
	if err != nil {
		return nil, &telephone.StorageError{ID: s.dir, Op: "list", Err: err}
	}

	ids := make([]telephone.StageID, 0, len(matches))
	for _, m := range matches {
		id, err := telephone.ParseStageID(m)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	telephone.SortStageIDs(ids)
	return ids, nil
}
