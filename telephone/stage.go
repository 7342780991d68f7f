package telephone

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const (
	originalName = "original"
	stagePrefix  = "stage_"
)

// StageID identifies one waveform of a chain. Stage 0 is the untouched source.
//
// Names embed the index in decimal ("stage_7") and ordering always compares
// the embedded integer, so "stage_10" sorts after "stage_2".
type StageID int

// Stage returns the chain position.
func (id StageID) Stage() int { return int(id) }

// String returns "original" for stage 0 and "stage_<n>" otherwise.
func (id StageID) String() string {
	if id == 0 {
		return originalName
	}
	return stagePrefix + strconv.Itoa(int(id))
}

// Compare orders ids by their numeric index.
func (id StageID) Compare(other StageID) int {
	return cmp.Compare(id, other)
}

// ParseStageID extracts the stage index from a name such as "stage_12",
// "stage_12.wav" or "out/stage_12.wav". "original" maps to stage 0.
func ParseStageID(name string) (StageID, error) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if base == originalName {
		return 0, nil
	}
	digits, ok := strings.CutPrefix(base, stagePrefix)
	if !ok || digits == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStageID, name)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || strings.HasPrefix(digits, "+") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStageID, name)
	}
	return StageID(n), nil
}

// SortStageIDs orders ids by stage index in place.
func SortStageIDs(ids []StageID) {
	slices.SortFunc(ids, StageID.Compare)
}

// SortStageNames returns names ordered by their embedded stage index. It
// fails on the first name that carries no index.
func SortStageNames(names []string) ([]string, error) {
	type keyed struct {
		id   StageID
		name string
	}
	items := make([]keyed, len(names))
	for i, name := range names {
		id, err := ParseStageID(name)
		if err != nil {
			return nil, err
		}
		items[i] = keyed{id: id, name: name}
	}
	slices.SortStableFunc(items, func(a, b keyed) int { return a.id.Compare(b.id) })

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out, nil
}
