package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortplay/internal/algorithm"
)

func TestQuotaEnforcer_WithinLimit(t *testing.T) {
	q := NewQuotaEnforcer(10)

	for i := 0; i < 10; i++ {
		assert.NoError(t, q.Check("bubble"), "step %d should be allowed", i+1)
	}
	assert.Error(t, q.Check("bubble"))
}

func TestQuotaEnforcer_ExceedsLimit(t *testing.T) {
	q := NewQuotaEnforcer(5)

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Check("heap"))
	}

	err := q.Check("heap")
	require.Error(t, err)

	var stepsErr *StepsExceededError
	require.ErrorAs(t, err, &stepsErr)
	assert.Equal(t, "heap", stepsErr.Algorithm)
	assert.Equal(t, 6, stepsErr.Steps)
	assert.Equal(t, 5, stepsErr.Limit)
}

func TestQuotaEnforcer_ZeroLimitIsUnlimited(t *testing.T) {
	q := NewQuotaEnforcer(0)
	for i := 0; i < 10000; i++ {
		require.NoError(t, q.Check("shell"))
	}
}

func TestStepsExceededError_Error(t *testing.T) {
	err := &StepsExceededError{Algorithm: "cycle", Steps: 11, Limit: 10}
	assert.Equal(t, "recording cycle exceeded max operations quota: 11 operations > 10 limit", err.Error())
}

func TestIsStepsExceededError(t *testing.T) {
	err := &StepsExceededError{Algorithm: "cycle", Steps: 2, Limit: 1}

	assert.True(t, IsStepsExceededError(err))
	assert.True(t, IsStepsExceededError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsStepsExceededError(fmt.Errorf("other")))
}

func TestEngine_QuotaStopsRecording(t *testing.T) {
	e := New(10, WithSeed(1), WithMaxOperations(5))
	e.Select(algorithm.Reverse)

	err := e.TryFlush()
	require.Error(t, err)
	assert.True(t, IsStepsExceededError(err))

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, e.Values(), "visible array must be untouched")
	assert.Equal(t, Unrecorded, e.State())
}

func TestEngine_QuotaFailureDiscardsPartialLog(t *testing.T) {
	e := New(20, WithSeed(1), WithMaxOperations(10))
	e.Reverse()

	err := e.TryFlush()
	require.Error(t, err)
	assert.True(t, IsStepsExceededError(err))

	assert.Equal(t, Unrecorded, e.State())
	assert.Zero(t, e.Len())
	assert.Zero(t, e.Cursor())
	assert.Empty(t, e.buffer)

	// A later selection records normally.
	e.Select(algorithm.None)
	require.NoError(t, e.TryFlush())
	assert.Equal(t, Complete, e.State())
}

func TestEngine_QuotaExactFit(t *testing.T) {
	// Reverse over 4 cells records exactly 4 writes.
	e := New(4, WithSeed(1), WithMaxOperations(4))
	e.Reverse()

	require.NoError(t, e.TryFlush())
	assert.Equal(t, []int{4, 3, 2, 1}, e.Values())
}
