package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/op"
)

func newRecorder(values ...int) *recorder {
	return &recorder{
		name:   "test",
		buffer: values,
		log:    op.NewLog(0),
		quota:  NewQuotaEnforcer(0),
	}
}

func TestRecorder_Compare(t *testing.T) {
	r := newRecorder(3, 1, 2)

	assert.Equal(t, algorithm.Greater, r.Compare(0, 1))
	assert.True(t, r.Less(1, 2))
	assert.True(t, r.Equal(2, 2))
	assert.False(t, r.Greater(1, 0))

	ops := r.log.Operations()
	require.Len(t, ops, 12)
	assert.Equal(t, []op.Operation{op.Read(0), op.Read(1), op.Compare()}, ops[:3])
	assert.Equal(t, []int{3, 1, 2}, r.buffer, "compare never moves values")
}

func TestRecorder_Swap(t *testing.T) {
	r := newRecorder(3, 1, 2)
	r.Swap(0, 2)

	assert.Equal(t, []int{2, 1, 3}, r.buffer)
	assert.Equal(t, []op.Operation{
		op.Read(0), op.Read(2), op.Write(0, 2), op.Write(2, 3), op.Swap(),
	}, r.log.Operations())
}

func TestRecorder_SwapSameIndex(t *testing.T) {
	r := newRecorder(5, 6)
	r.Swap(1, 1)

	assert.Equal(t, []int{5, 6}, r.buffer)
	assert.Equal(t, 5, r.log.Len())
	assert.NoError(t, r.log.CheckPairing())
}

func TestRecorder_ReadWrite(t *testing.T) {
	r := newRecorder(1, 2)

	assert.Equal(t, 2, r.Read(1))
	r.Write(0, 9)

	assert.Equal(t, []int{9, 2}, r.buffer)
	assert.Equal(t, []op.Operation{op.Read(1), op.Write(0, 9)}, r.log.Operations())
}

func TestRecorder_IndexOutOfRange(t *testing.T) {
	cases := map[string]func(r *recorder){
		"read negative": func(r *recorder) { r.Read(-1) },
		"read past end": func(r *recorder) { r.Read(2) },
		"write":         func(r *recorder) { r.Write(5, 1) },
		"swap":          func(r *recorder) { r.Swap(0, 2) },
		"compare":       func(r *recorder) { r.Compare(3, 0) },
	}

	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			r := newRecorder(1, 2)
			defer func() {
				rec := recover()
				require.NotNil(t, rec)
				ie, ok := rec.(*InvariantError)
				require.True(t, ok, "panic value %T", rec)
				assert.Equal(t, ErrCodeIndexOutOfRange, ie.Code)
				assert.Equal(t, 2, ie.Size)
			}()
			call(r)
		})
	}
}

func TestInvariantError(t *testing.T) {
	err := NewIndexError("heap", 7, 4)
	assert.Equal(t, "INDEX_OUT_OF_RANGE: index 7 outside [0, 4) (algorithm=heap, size=4)", err.Error())
	assert.True(t, IsInvariantError(err, ErrCodeIndexOutOfRange))
	assert.False(t, IsInvariantError(err, ErrCodeNotSorted))

	bare := &InvariantError{Code: ErrCodeNotPermutation, Message: "dup"}
	assert.Equal(t, "NOT_PERMUTATION: dup", bare.Error())
}

func TestRecoverInvariant_RepanicsForeignValues(t *testing.T) {
	assert.Panics(t, func() { _ = recoverInvariant("boom") })
	assert.Error(t, recoverInvariant(NewIndexError("x", 1, 1)))
}
