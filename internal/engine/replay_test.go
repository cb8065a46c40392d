package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/op"
)

func recordingOf(t *testing.T, id algorithm.ID, size int, seed int64) Recording {
	t.Helper()
	e := shuffled(t, size, seed)
	e.Select(id)
	return e.Recording()
}

func TestReplay_Partial(t *testing.T) {
	rec := Recording{
		ID:         "r",
		Algorithm:  algorithm.Reverse,
		Initial:    []int{1, 2, 3},
		Operations: []op.Operation{op.Write(0, 3), op.Write(1, 2), op.Write(2, 1)},
	}

	arr, err := Replay(rec, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 3}, arr.Values())
	assert.Equal(t, 1, arr.Writes())

	arr, err = Replay(rec, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, arr.Values())
}

func TestReplay_OutOfRangeWrite(t *testing.T) {
	rec := Recording{
		ID:         "bad",
		Algorithm:  algorithm.Reverse,
		Initial:    []int{1, 2},
		Operations: []op.Operation{op.Write(2, 1)},
	}

	_, err := Replay(rec, -1)
	require.Error(t, err)
	assert.True(t, IsInvariantError(err, ErrCodeIndexOutOfRange))
}

func TestVerify_AllAlgorithms(t *testing.T) {
	for _, id := range algorithm.All() {
		t.Run(id.String(), func(t *testing.T) {
			rec := recordingOf(t, id, 24, 31)

			v, err := Verify(rec)
			require.NoError(t, err)
			assert.True(t, v.OK(), "errors: %v", v.Errors)
			assert.Len(t, v.Hash, 64)
			assert.Equal(t, len(rec.Operations), v.Counts.Total())
		})
	}
}

func TestVerify_DetectsUnsorted(t *testing.T) {
	rec := recordingOf(t, algorithm.Insertion, 10, 4)
	rec.Operations = rec.Operations[:len(rec.Operations)/2]
	// Cut at a group boundary so pairing still holds.
	for len(rec.Operations) > 0 {
		if op.CheckPairing(rec.Operations) == nil {
			break
		}
		rec.Operations = rec.Operations[:len(rec.Operations)-1]
	}

	v, err := Verify(rec)
	require.NoError(t, err)
	assert.False(t, v.OK())
	assert.Contains(t, v.Errors, "final values are not sorted")
}

func TestVerify_DetectsBrokenPairing(t *testing.T) {
	rec := Recording{
		ID:         "r",
		Algorithm:  algorithm.Shuffle,
		Initial:    []int{1, 2},
		Operations: []op.Operation{op.Read(0), op.Compare()},
	}

	v, err := Verify(rec)
	require.NoError(t, err)
	assert.False(t, v.OK())
}

func TestVerify_Reverse(t *testing.T) {
	rec := recordingOf(t, algorithm.Reverse, 6, 1)
	v, err := Verify(rec)
	require.NoError(t, err)
	assert.True(t, v.OK())
	assert.Equal(t, []int{6, 5, 4, 3, 2, 1}, v.Final)

	rec.Operations = rec.Operations[:5]
	v, err = Verify(rec)
	require.NoError(t, err)
	assert.False(t, v.OK())
}

func TestRecording_HashChangesWithContent(t *testing.T) {
	a := recordingOf(t, algorithm.Gnome, 12, 1)
	b := recordingOf(t, algorithm.Gnome, 12, 2)

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)

	assert.NotEqual(t, ha, hb)
	assert.Equal(t, 12, a.Size())
}
