package engine

import (
	"errors"
	"fmt"
)

// QuotaEnforcer bounds the number of operations one recording may append.
//
// A correct algorithm over n cells records at most O(n^2) operations; a
// defective one (for example cycle sort fed duplicates) can loop forever.
// The quota turns such a loop into a StepsExceededError panic.
//
// A limit of 0 disables enforcement.
type QuotaEnforcer struct {
	maxSteps int
	current  int
}

// NewQuotaEnforcer creates a quota enforcer with the given limit.
func NewQuotaEnforcer(maxSteps int) *QuotaEnforcer {
	return &QuotaEnforcer{maxSteps: maxSteps}
}

// Check counts one step and reports StepsExceededError past the limit.
func (q *QuotaEnforcer) Check(algorithm string) error {
	q.current++
	if q.maxSteps > 0 && q.current > q.maxSteps {
		return &StepsExceededError{
			Algorithm: algorithm,
			Steps:     q.current,
			Limit:     q.maxSteps,
		}
	}
	return nil
}

// StepsExceededError is the panic value when a recording exceeds its quota.
type StepsExceededError struct {
	Algorithm string
	Steps     int
	Limit     int
}

// Error implements the error interface.
func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("recording %s exceeded max operations quota: %d operations > %d limit",
		e.Algorithm, e.Steps, e.Limit)
}

// IsStepsExceededError returns true if the error is a StepsExceededError.
// Uses errors.As to handle wrapped errors.
func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
