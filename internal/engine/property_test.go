package engine

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/array"
	"github.com/roach88/sortplay/internal/op"
)

// TestSortProperties checks, for random sizes, seeds and sorts, that a
// shuffled array ends sorted, that the counters equal the log's tally and
// that every Compare and Swap is paired with its reads and writes.
func TestSortProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	sorts := algorithm.Sorts()

	properties.Property("every sort sorts and pairs its log", prop.ForAll(
		func(size int, seed int64, pick int) bool {
			e := New(size, WithSeed(seed))
			e.Shuffle()
			e.Flush()
			e.ResetStats()

			e.Select(sorts[pick%len(sorts)])
			rec := e.Recording()
			e.Flush()

			if !array.IsSorted(e.Values()) || !array.IsPermutation(e.Values()) {
				return false
			}
			if op.CheckPairing(rec.Operations) != nil {
				return false
			}
			return e.Stats() == rec.Counts() && e.Cursor() == len(rec.Operations)
		},
		gen.IntRange(0, 40),
		gen.Int64Range(1, 1<<40),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

// TestPlaybackProperties checks that Tick, Frame and Flush all reach the same
// end state for the same recording.
func TestPlaybackProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("tick, frame and flush agree", prop.ForAll(
		func(size int, seed int64, seconds float64) bool {
			build := func() *Engine {
				e := New(size, WithSeed(seed))
				e.Shuffle()
				e.Flush()
				e.ResetStats()
				e.Heap()
				return e
			}

			byTick, byFrame, byFlush := build(), build(), build()
			for byTick.Tick() {
			}
			for byFrame.Frame(seconds) && byFrame.State() != Complete {
			}
			byFlush.Flush()

			want := byFlush.Values()
			return slices.Equal(byTick.Values(), want) &&
				slices.Equal(byFrame.Values(), want) &&
				byTick.Stats() == byFlush.Stats() &&
				byFrame.Stats() == byFlush.Stats()
		},
		gen.IntRange(0, 30),
		gen.Int64Range(1, 1<<40),
		gen.Float64Range(0, 3),
	))

	properties.TestingRun(t)
}

// TestShuffleProperties checks that a seeded shuffle is reproducible and
// always leaves a permutation.
func TestShuffleProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("seeded shuffle is a reproducible permutation", prop.ForAll(
		func(size int, seed int64) bool {
			a := New(size, WithSeed(seed))
			b := New(size, WithSeed(seed))
			a.Shuffle()
			b.Shuffle()
			a.Flush()
			b.Flush()
			return array.IsPermutation(a.Values()) &&
				slices.Equal(a.Values(), b.Values()) &&
				a.Swaps() == max(size-1, 0)
		},
		gen.IntRange(0, 64),
		gen.Int64Range(1, 1<<40),
	))

	properties.TestingRun(t)
}
