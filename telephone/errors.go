package telephone

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig reports a configuration that cannot produce a run.
	ErrInvalidConfig = errors.New("telephone: invalid config")
	// ErrInvalidStage reports a stage index below 1 passed to the transform.
	ErrInvalidStage = errors.New("telephone: invalid stage")
	// ErrFilterInstability reports a low-pass that could not be designed or
	// produced non-finite output.
	ErrFilterInstability = errors.New("telephone: filter instability")
	// ErrEmptyInputSet reports an analysis run that found no stored stages.
	ErrEmptyInputSet = errors.New("telephone: no stage waveforms found")
	// ErrEmptyWaveform reports a zero-length waveform.
	ErrEmptyWaveform = errors.New("telephone: empty waveform")
	// ErrStorage is matched by every *StorageError.
	ErrStorage = errors.New("telephone: storage failure")
	// ErrInvalidStageID reports a name that does not embed a stage index.
	ErrInvalidStageID = errors.New("telephone: invalid stage id")
)

// StorageError wraps a persistence failure with the identifier involved.
type StorageError struct {
	ID  string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("telephone: %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports ErrStorage as a match so callers can test the error kind
// without unwrapping to the concrete type.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
