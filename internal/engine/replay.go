package engine

import (
	"fmt"
	"slices"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/array"
	"github.com/roach88/sortplay/internal/op"
)

// Recording is a frozen, self-contained run of one algorithm: the values it
// started from and every operation it produced.
//
// A Recording replays identically anywhere. Applying Operations in order
// to an array holding Initial always yields the same values and counters,
// so recordings can be stored, compared by hash and verified later.
type Recording struct {
	ID         string
	Seq        int64
	Algorithm  algorithm.ID
	Seed       int64
	Initial    []int
	Operations []op.Operation
}

// Size returns the number of cells.
func (r Recording) Size() int {
	return len(r.Initial)
}

// Counts tallies the operations by kind.
func (r Recording) Counts() op.Counts {
	var c op.Counts
	for _, o := range r.Operations {
		c.Add(o.Kind)
	}
	return c
}

// Hash returns the content address of the recording.
func (r Recording) Hash() (string, error) {
	return op.LogHash(r.Algorithm.String(), r.Initial, r.Operations)
}

// Replay applies the first upTo operations of r to a fresh array holding
// r.Initial and returns it. upTo < 0 means all operations.
//
// Returns an error, instead of panicking, if an operation writes outside
// the array.
func Replay(r Recording, upTo int) (arr *array.Array, err error) {
	if upTo < 0 || upTo > len(r.Operations) {
		upTo = len(r.Operations)
	}

	arr = array.FromValues(r.Initial)
	for i, o := range r.Operations[:upTo] {
		if o.Kind == op.KindWrite && (o.Index < 0 || o.Index >= arr.Size()) {
			return nil, fmt.Errorf("replay %s: operation %d: %w", r.ID, i,
				NewIndexError(r.Algorithm.String(), o.Index, arr.Size()))
		}
		arr.Apply(o)
	}
	return arr, nil
}

// Verification is the outcome of Verify.
type Verification struct {
	Hash   string
	Counts op.Counts
	Final  []int
	Sorted bool
	Errors []string
}

// OK reports whether every check passed.
func (v Verification) OK() bool {
	return len(v.Errors) == 0
}

// Verify replays r twice and checks that both runs agree, that the log
// pairs correctly, that replayed counters match the log and that the final
// values are what the algorithm promises: sorted for a sort, the exact
// reverse for Reverse and a permutation for Shuffle.
func Verify(r Recording) (Verification, error) {
	var v Verification

	hash, err := r.Hash()
	if err != nil {
		return v, fmt.Errorf("verify %s: %w", r.ID, err)
	}
	v.Hash = hash
	v.Counts = r.Counts()

	first, err := Replay(r, -1)
	if err != nil {
		return v, err
	}
	second, err := Replay(r, -1)
	if err != nil {
		return v, err
	}

	v.Final = first.Values()
	v.Sorted = first.IsSorted()

	if !slices.Equal(v.Final, second.Values()) || first.Stats() != second.Stats() {
		v.Errors = append(v.Errors, "replays diverged")
	}
	if err := op.CheckPairing(r.Operations); err != nil {
		v.Errors = append(v.Errors, err.Error())
	}
	if first.Stats() != v.Counts {
		v.Errors = append(v.Errors, fmt.Sprintf("counters %+v do not match log %+v", first.Stats(), v.Counts))
	}
	if !array.IsPermutation(v.Final) {
		v.Errors = append(v.Errors, "final values are not a permutation")
	}

	switch {
	case r.Algorithm == algorithm.Reverse:
		want := make([]int, len(r.Initial))
		for i := range want {
			want[i] = len(want) - i
		}
		if !slices.Equal(v.Final, want) {
			v.Errors = append(v.Errors, "final values are not the reverse of 1..size")
		}
	case r.Algorithm.IsTransform() || r.Algorithm == algorithm.None:
	default:
		if !v.Sorted {
			v.Errors = append(v.Errors, "final values are not sorted")
		}
	}

	return v, nil
}
