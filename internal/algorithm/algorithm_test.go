package algorithm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortplay/internal/op"
)

// bufferPrimitives is a minimal Primitives over a slice that records the
// operations it performs, mirroring the engine's recorder.
type bufferPrimitives struct {
	values []int
	ops    []op.Operation
}

func (b *bufferPrimitives) Read(i int) int {
	b.ops = append(b.ops, op.Read(i))
	return b.values[i]
}

func (b *bufferPrimitives) Write(i, v int) {
	b.ops = append(b.ops, op.Write(i, v))
	b.values[i] = v
}

func (b *bufferPrimitives) Swap(i, j int) {
	vi, vj := b.Read(i), b.Read(j)
	b.Write(i, vj)
	b.Write(j, vi)
	b.ops = append(b.ops, op.Swap())
}

func (b *bufferPrimitives) Compare(i, j int) Ordering {
	vi, vj := b.Read(i), b.Read(j)
	b.ops = append(b.ops, op.Compare())
	switch {
	case vi < vj:
		return Less
	case vi > vj:
		return Greater
	default:
		return Equal
	}
}

func (b *bufferPrimitives) Greater(i, j int) bool { return b.Compare(i, j) == Greater }
func (b *bufferPrimitives) Less(i, j int) bool    { return b.Compare(i, j) == Less }
func (b *bufferPrimitives) Equal(i, j int) bool   { return b.Compare(i, j) == Equal }

func run(id ID, values []int, seed int64) *bufferPrimitives {
	b := &bufferPrimitives{values: append([]int(nil), values...)}
	Run(id, b, len(values), rand.New(rand.NewSource(seed)))
	return b
}

// permutations returns every ordering of 1..n.
func permutations(n int) [][]int {
	var out [][]int
	var walk func(prefix []int, used []bool)
	walk = func(prefix []int, used []bool) {
		if len(prefix) == n {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for v := 1; v <= n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			walk(append(prefix, v), used)
			used[v] = false
		}
	}
	walk(nil, make([]bool, n+1))
	return out
}

func ascending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestSorts_AllSmallPermutations(t *testing.T) {
	for _, id := range Sorts() {
		t.Run(id.String(), func(t *testing.T) {
			for n := 0; n <= 5; n++ {
				for _, perm := range permutations(n) {
					b := run(id, perm, 1)
					require.Equal(t, ascending(n), b.values, "input %v", perm)
					require.NoError(t, op.CheckPairing(b.ops), "input %v", perm)
				}
			}
		})
	}
}

func TestSorts_LargeShuffled(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	input := ascending(100)
	r.Shuffle(len(input), func(i, j int) { input[i], input[j] = input[j], input[i] })

	for _, id := range Sorts() {
		t.Run(id.String(), func(t *testing.T) {
			b := run(id, input, 1)
			assert.Equal(t, ascending(100), b.values)
		})
	}
}

func TestDegenerateSizes_RecordNothing(t *testing.T) {
	for _, id := range All() {
		for _, n := range []int{0, 1} {
			b := run(id, ascending(n), 7)
			if id == Reverse && n == 1 {
				// reverse writes every cell, even a single one
				assert.Equal(t, []op.Operation{op.Write(0, 1)}, b.ops)
				continue
			}
			assert.Empty(t, b.ops, "%s on size %d", id, n)
		}
	}
}

func TestReverse(t *testing.T) {
	b := run(Reverse, []int{3, 1, 2, 5, 4}, 0)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, b.values)
	for _, o := range b.ops {
		assert.Equal(t, op.KindWrite, o.Kind, "reverse must not read")
	}
}

func TestShuffle_PreservesPermutation(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b := run(Shuffle, ascending(10), seed)
		assert.ElementsMatch(t, ascending(10), b.values)
		require.NoError(t, op.CheckPairing(b.ops))
		assert.Equal(t, 9, op.FromOperations(b.ops).Counts().Swaps)
	}
}

func TestShuffle_SeedDeterminism(t *testing.T) {
	a := run(Shuffle, ascending(20), 99)
	b := run(Shuffle, ascending(20), 99)
	assert.Equal(t, a.ops, b.ops)
}

func TestShuffle_LastIndexCanMove(t *testing.T) {
	moved := false
	for seed := int64(0); seed < 50 && !moved; seed++ {
		b := run(Shuffle, ascending(4), seed)
		moved = b.values[3] != 4
	}
	assert.True(t, moved, "the last cell must be reachable as a swap partner")
}

func TestBubble_ReversedFive(t *testing.T) {
	b := run(Bubble, []int{5, 4, 3, 2, 1}, 0)
	c := op.FromOperations(b.ops).Counts()

	assert.Equal(t, 10, c.Compares)
	assert.Equal(t, 10, c.Swaps)
	assert.Equal(t, 40, c.Reads)
	assert.Equal(t, 20, c.Writes)
}

func TestBubble_SortedInputSinglePass(t *testing.T) {
	b := run(Bubble, ascending(5), 0)
	c := op.FromOperations(b.ops).Counts()
	assert.Equal(t, 4, c.Compares)
	assert.Zero(t, c.Swaps)
}

func TestQuickSort_UsesCompare(t *testing.T) {
	b := run(QuickSort, []int{3, 1, 2}, 0)
	assert.Positive(t, op.FromOperations(b.ops).Counts().Compares)
}

func TestParse(t *testing.T) {
	tests := map[string]ID{
		"bubble":     Bubble,
		"oddEven":    OddEven,
		"odd-even":   OddEven,
		"QUICKSORT":  QuickSort,
		"quick_sort": QuickSort,
		"shuffle":    Shuffle,
		" reverse ":  Reverse,
	}
	for in, want := range tests {
		got, ok := Parse(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := Parse("bogo")
	assert.False(t, ok)
	_, ok = Parse("none")
	assert.False(t, ok, "none is not selectable")
}

func TestCatalogue(t *testing.T) {
	assert.Len(t, All(), 12)
	assert.Len(t, Sorts(), 10)
	assert.True(t, Shuffle.IsTransform())
	assert.False(t, Heap.IsTransform())
	assert.Equal(t, "unknown", ID(99).String())
	assert.False(t, ID(-1).Valid())
	assert.Panics(t, func() { Run(ID(99), &bufferPrimitives{}, 0, nil) })
}
