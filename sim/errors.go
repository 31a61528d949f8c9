package sim

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by the simulator. Compare with errors.Is.
var (
	// ErrInvalidConfiguration reports a malformed scheduling configuration.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidProcess reports a malformed process description.
	ErrInvalidProcess = errors.New("invalid process")
	// ErrInconsistentState reports an internal invariant violation. It always
	// indicates an engine bug and is never recoverable by the caller.
	ErrInconsistentState = errors.New("inconsistent state")
)

// ValidationError collects every problem found while validating one kind of input.
type ValidationError struct {
	Kind     error
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// add records a problem.
func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// errOrNil returns nil when no problems were recorded.
func (e *ValidationError) errOrNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// InconsistentStateError aborts a run when the driver detects a broken invariant.
type InconsistentStateError struct {
	Clock      int64
	Current    string // ID of the running process, empty when the CPU was free
	LastAction string
	Reason     string
}

func (e *InconsistentStateError) Error() string {
	current := e.Current
	if current == "" {
		current = "<none>"
	}
	return fmt.Sprintf("%v at tick %d (current=%s, last action=%q): %s",
		ErrInconsistentState, e.Clock, current, e.LastAction, e.Reason)
}

func (e *InconsistentStateError) Unwrap() error {
	return ErrInconsistentState
}
