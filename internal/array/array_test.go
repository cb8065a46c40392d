package array

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/sortplay/internal/op"
)

func TestNew(t *testing.T) {
	a := New(5)
	assert.Equal(t, 5, a.Size())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, a.Values())
	assert.Equal(t, Stats{}, a.Stats())
}

func TestNew_Empty(t *testing.T) {
	a := New(0)
	assert.Equal(t, 0, a.Size())
	assert.Empty(t, a.Values())
	assert.True(t, a.IsSorted())
}

func TestNew_NegativePanics(t *testing.T) {
	assert.Panics(t, func() { New(-1) })
}

func TestApply(t *testing.T) {
	a := New(3)

	a.Apply(op.Read(0))
	a.Apply(op.Read(2))
	a.Apply(op.Compare())
	a.Apply(op.Write(0, 3))
	a.Apply(op.Write(2, 1))
	a.Apply(op.Swap())

	assert.Equal(t, []int{3, 2, 1}, a.Values())
	assert.Equal(t, 2, a.Reads())
	assert.Equal(t, 2, a.Writes())
	assert.Equal(t, 1, a.Compares())
	assert.Equal(t, 1, a.Swaps())
}

func TestApply_MarkersDoNotMoveValues(t *testing.T) {
	a := New(2)
	a.Apply(op.Swap())
	a.Apply(op.Compare())
	a.Apply(op.Read(1))
	assert.Equal(t, []int{1, 2}, a.Values())
}

func TestApply_OutOfRangeWritePanics(t *testing.T) {
	a := New(2)
	assert.Panics(t, func() { a.Apply(op.Write(2, 1)) })
}

func TestResetStats(t *testing.T) {
	a := New(2)
	a.Apply(op.Write(0, 2))
	a.Apply(op.Write(1, 1))
	a.ResetStats()

	assert.Equal(t, Stats{}, a.Stats())
	assert.Equal(t, []int{2, 1}, a.Values(), "reset must not touch values")
}

func TestValues_IsACopy(t *testing.T) {
	a := New(2)
	v := a.Values()
	v[0] = 99
	assert.Equal(t, []int{1, 2}, a.Values())
}

func TestCopyInto_ReusesBuffer(t *testing.T) {
	a := New(3)
	buf := make([]int, 0, 8)
	out := a.CopyInto(buf)
	assert.Equal(t, []int{1, 2, 3}, out)
	assert.Equal(t, 8, cap(out))
}

func TestIsPermutation(t *testing.T) {
	assert.True(t, IsPermutation(nil))
	assert.True(t, IsPermutation([]int{3, 1, 2}))
	assert.False(t, IsPermutation([]int{1, 1, 2}))
	assert.False(t, IsPermutation([]int{0, 1}))
	assert.False(t, IsPermutation([]int{1, 3}))
}

func TestIsSorted(t *testing.T) {
	assert.True(t, IsSorted([]int{1}))
	assert.True(t, IsSorted([]int{1, 2, 2, 3}))
	assert.False(t, IsSorted([]int{2, 1}))
}

func TestFromValues(t *testing.T) {
	in := []int{3, 1, 2}
	a := FromValues(in)
	in[0] = 99

	assert.Equal(t, []int{3, 1, 2}, a.Values())
	assert.Equal(t, Stats{}, a.Stats())
}
