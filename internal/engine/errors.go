package engine

import (
	"errors"
	"fmt"
)

// InvariantError is the panic value for a violated core invariant.
//
// Invariant errors are defects in an algorithm or its caller, never runtime
// conditions to recover from. They carry enough structure to identify the
// algorithm and cell involved.
type InvariantError struct {
	// Code identifies the violated invariant.
	Code InvariantCode

	// Message is a human-readable description.
	Message string

	// Algorithm names the recording algorithm, when one was running.
	Algorithm string

	// Index is the offending cell (INDEX_OUT_OF_RANGE only).
	Index int

	// Size is the array size at the time of the violation.
	Size int
}

// InvariantCode categorizes invariant violations.
type InvariantCode string

const (
	// ErrCodeIndexOutOfRange indicates a primitive was called with an index
	// outside [0, size).
	ErrCodeIndexOutOfRange InvariantCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeNotPermutation indicates a recording left the buffer with a
	// duplicate or out-of-range value.
	ErrCodeNotPermutation InvariantCode = "NOT_PERMUTATION"

	// ErrCodeNotSorted indicates a sort finished with the buffer unsorted.
	ErrCodeNotSorted InvariantCode = "NOT_SORTED"

	// ErrCodeInvalidAlgorithm indicates Select was called with an ID outside
	// the catalogue.
	ErrCodeInvalidAlgorithm InvariantCode = "INVALID_ALGORITHM"
)

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e.Algorithm != "" {
		return fmt.Sprintf("%s: %s (algorithm=%s, size=%d)", e.Code, e.Message, e.Algorithm, e.Size)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewIndexError creates an InvariantError for an out-of-range index.
func NewIndexError(algorithm string, index, size int) *InvariantError {
	return &InvariantError{
		Code:      ErrCodeIndexOutOfRange,
		Message:   fmt.Sprintf("index %d outside [0, %d)", index, size),
		Algorithm: algorithm,
		Index:     index,
		Size:      size,
	}
}

// IsInvariantError reports whether err is an InvariantError with code.
// Uses errors.As to handle wrapped errors.
func IsInvariantError(err error, code InvariantCode) bool {
	var ie *InvariantError
	if errors.As(err, &ie) {
		return ie.Code == code
	}
	return false
}

// UnknownAlgorithmError is returned by SelectByName for a name that is not
// in the catalogue.
type UnknownAlgorithmError struct {
	Name  string
	Known []string
}

// Error implements the error interface.
func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown algorithm %q (known: %v)", e.Name, e.Known)
}

// IsUnknownAlgorithm reports whether err is an UnknownAlgorithmError.
func IsUnknownAlgorithm(err error) bool {
	var ue *UnknownAlgorithmError
	return errors.As(err, &ue)
}

// recoverInvariant converts a recovered panic value into an error if it is
// one of the engine's typed panics, and re-panics otherwise.
func recoverInvariant(r any) error {
	switch v := r.(type) {
	case *InvariantError:
		return v
	case *StepsExceededError:
		return v
	default:
		panic(r)
	}
}
