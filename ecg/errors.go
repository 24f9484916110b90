package ecg

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSignal is the cause of a LoadError when no variable is a
	// non-empty numeric array of rank <= 2.
	ErrNoSignal = errors.New("no numeric array of rank <= 2 found")
	// ErrVariableNotFound is the cause of a LoadError when an explicitly
	// requested variable does not exist.
	ErrVariableNotFound = errors.New("variable not found")

	// ErrInvalidOrder, ErrCutoffOutOfRange, ErrInvalidBand and
	// ErrUnknownFilterKind classify FilterError values.
	ErrInvalidOrder      = errors.New("filter order must be > 0")
	ErrCutoffOutOfRange  = errors.New("cutoff must lie strictly between 0 and the Nyquist frequency")
	ErrInvalidBand       = errors.New("bandpass low edge must lie below the cutoff")
	ErrUnknownFilterKind = errors.New("unknown filter kind")

	// ErrInvalidSampleRate is returned by the stages when an option set a
	// sample rate that is not positive and finite.
	ErrInvalidSampleRate = errors.New("sample rate must be positive and finite")

	// ErrEmptySignal is matched by every EmptySignalError.
	ErrEmptySignal = errors.New("empty signal")
)

// LoadError reports a container that could not be read or that holds no
// acceptable signal array.
type LoadError struct {
	Cause error
}

func (e *LoadError) Error() string {
	return "loading ECG data: " + e.Cause.Error()
}

func (e *LoadError) Unwrap() error { return e.Cause }

// FilterError reports filter parameters that cannot be designed or applied.
type FilterError struct {
	Spec    FilterSpec
	Nyquist float64
	Err     error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("ecg: %s filter (cutoff %g Hz, order %d, nyquist %g Hz): %v",
		e.Spec.Kind, e.Spec.CutoffHz, e.Spec.Order, e.Nyquist, e.Err)
}

func (e *FilterError) Unwrap() error { return e.Err }

// EmptySignalError reports an operation that needs at least one sample.
type EmptySignalError struct {
	Op string
}

func (e *EmptySignalError) Error() string {
	return "ecg: " + e.Op + ": " + ErrEmptySignal.Error()
}

func (e *EmptySignalError) Unwrap() error { return ErrEmptySignal }
