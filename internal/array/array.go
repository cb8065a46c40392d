// Package array implements the instrumented, user-visible sequence.
//
// An Array only changes through Apply. Reads, compares and swaps are
// counted but never move values: by the time an operation reaches the
// array, the algorithm has already done the real work against its private
// buffer, and the exchange behind a Swap arrives as the two Writes that
// precede it.
package array

import (
	"fmt"

	"github.com/roach88/sortplay/internal/op"
)

// Stats is a snapshot of the four access counters.
type Stats = op.Counts

// Array is the visible permutation of 1..size plus its access counters.
//
// INVARIANTS:
//   - len(values) == size for the lifetime of the array
//   - counters only grow, except through ResetStats
type Array struct {
	values []int
	stats  Stats
}

// New returns an array holding 1, 2, ..., size with zeroed counters.
// Panics if size is negative.
func New(size int) *Array {
	if size < 0 {
		panic(fmt.Sprintf("array: negative size %d", size))
	}
	values := make([]int, size)
	for i := range values {
		values[i] = i + 1
	}
	return &Array{values: values}
}

// FromValues returns an array holding a copy of values with zeroed
// counters. Used to replay a stored recording from its initial state.
func FromValues(values []int) *Array {
	out := make([]int, len(values))
	copy(out, values)
	return &Array{values: out}
}

// Size returns the number of cells.
func (a *Array) Size() int {
	return len(a.values)
}

// Values returns a copy of the current values.
func (a *Array) Values() []int {
	out := make([]int, len(a.values))
	copy(out, a.values)
	return out
}

// CopyInto appends the current values to dst[:0] and returns the result.
// Used to fill a reusable work buffer without allocating.
func (a *Array) CopyInto(dst []int) []int {
	return append(dst[:0], a.values...)
}

// Stats returns the current counters.
func (a *Array) Stats() Stats {
	return a.stats
}

// Reads returns the read counter.
func (a *Array) Reads() int { return a.stats.Reads }

// Writes returns the write counter.
func (a *Array) Writes() int { return a.stats.Writes }

// Compares returns the compare counter.
func (a *Array) Compares() int { return a.stats.Compares }

// Swaps returns the swap counter.
func (a *Array) Swaps() int { return a.stats.Swaps }

// ResetStats zeroes all four counters. Values are untouched.
func (a *Array) ResetStats() {
	a.stats = Stats{}
}

// Apply plays one recorded operation onto the array.
//
// A Write with an index outside [0, size) is a defect in whoever recorded
// it; the resulting index panic is not recovered.
func (a *Array) Apply(o op.Operation) {
	if o.Kind == op.KindWrite {
		a.values[o.Index] = o.Value
	}
	a.stats.Add(o.Kind)
}

// IsSorted reports whether the values are in non-decreasing order.
func (a *Array) IsSorted() bool {
	return IsSorted(a.values)
}

// IsSorted reports whether values is in non-decreasing order.
func IsSorted(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}

// IsPermutation reports whether values holds each of 1..len(values) exactly once.
func IsPermutation(values []int) bool {
	seen := make([]bool, len(values)+1)
	for _, v := range values {
		if v < 1 || v > len(values) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
