package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/array"
	"github.com/roach88/sortplay/internal/op"
	"github.com/roach88/sortplay/internal/random"
)

// DefaultMaxOperations bounds a single recording. A 1000-cell bubble sort
// of reversed input records a little under 4 million operations.
const DefaultMaxOperations = 50_000_000

// Engine is the controller that owns the visible array, the current
// selection, the operation log and the playback cursor.
//
// Thread-safety: every exported method takes e.mu, so recording and
// playback never interleave.
//
// INVARIANTS:
//   - the array only changes through playback
//   - the log is empty until the first playback call after Select
//   - once recorded, the log is frozen until the next Select
//   - 0 <= cursor <= log length
type Engine struct {
	mu sync.Mutex

	array    *array.Array
	current  algorithm.ID
	log      *op.Log
	playback *Playback
	recorded bool

	// buffer is the algorithm's private copy of the values. It is only
	// populated while a recording runs; its capacity is reused.
	buffer  []int
	initial []int

	rng       algorithm.Source
	seed      int64
	maxOps    int
	frameRate float64

	logger *slog.Logger
	clock  *Clock
	ids    IDGenerator

	recID  string
	recSeq int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSeed seeds the engine's generator. A zero seed picks a random one.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng, e.seed = random.NewRand(seed)
	}
}

// WithRand injects a randomness source. seed is only reported back through
// Seed and Recording; it is not used to reseed src.
func WithRand(src algorithm.Source, seed int64) Option {
	return func(e *Engine) {
		e.rng = src
		e.seed = seed
	}
}

// WithMaxOperations sets the per-recording operation quota.
//
// Default: DefaultMaxOperations. Use 0 to disable the quota.
func WithMaxOperations(n int) Option {
	return func(e *Engine) {
		e.maxOps = n
	}
}

// WithFrameRate sets the frames per second Frame paces against.
// Default: DefaultFrameRate (60).
func WithFrameRate(hz float64) Option {
	return func(e *Engine) {
		e.frameRate = hz
	}
}

// WithClock sets the logical clock that stamps recordings.
// Used to resume after the highest seq already in a store.
func WithClock(c *Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithIDGenerator sets the recording ID generator.
// Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// New creates an engine over an array of 1..size with no algorithm
// selected. Panics if size is negative.
func New(size int, opts ...Option) *Engine {
	e := &Engine{
		array:     array.New(size),
		current:   algorithm.None,
		log:       op.NewLog(0),
		maxOps:    DefaultMaxOperations,
		frameRate: DefaultFrameRate,
		logger:    slog.Default(),
		clock:     NewClock(),
		ids:       UUIDv7Generator{},
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng, e.seed = random.NewRand(0)
	}
	e.playback = NewPlayback(e.array, e.log)
	return e
}

// Select makes id the current algorithm. The log is emptied, the cursor
// rewound and the counters zeroed. Nothing is recorded until playback is
// requested. Panics with *InvariantError if id is not in the catalogue.
func (e *Engine) Select(id algorithm.ID) {
	if !id.Valid() {
		panic(&InvariantError{
			Code:    ErrCodeInvalidAlgorithm,
			Message: fmt.Sprintf("algorithm id %d is not in the catalogue", int(id)),
			Size:    e.Size(),
		})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.current = id
	e.log.Reset()
	e.playback.Rewind()
	e.recorded = false
	e.recID = ""
	e.recSeq = 0
	e.array.ResetStats()

	e.logger.Debug("algorithm selected", "algorithm", id.String(), "size", e.array.Size())
}

// SelectByName selects the algorithm with the given name.
// Matching is case-insensitive and ignores '-' and '_'.
func (e *Engine) SelectByName(name string) error {
	id, ok := algorithm.Parse(name)
	if !ok {
		known := make([]string, 0, len(algorithm.All()))
		for _, a := range algorithm.All() {
			known = append(known, a.String())
		}
		return &UnknownAlgorithmError{Name: name, Known: known}
	}
	e.Select(id)
	return nil
}

// Bubble selects bubble sort. See Select.
func (e *Engine) Bubble() { e.Select(algorithm.Bubble) }

// Cocktail selects cocktail shaker sort. See Select.
func (e *Engine) Cocktail() { e.Select(algorithm.Cocktail) }

// Selection selects selection sort. See Select.
func (e *Engine) Selection() { e.Select(algorithm.Selection) }

// Insertion selects insertion sort. See Select.
func (e *Engine) Insertion() { e.Select(algorithm.Insertion) }

// Gnome selects gnome sort. See Select.
func (e *Engine) Gnome() { e.Select(algorithm.Gnome) }

// Cycle selects cycle sort. See Select.
func (e *Engine) Cycle() { e.Select(algorithm.Cycle) }

// Heap selects heap sort. See Select.
func (e *Engine) Heap() { e.Select(algorithm.Heap) }

// Shell selects shell sort. See Select.
func (e *Engine) Shell() { e.Select(algorithm.Shell) }

// OddEven selects odd-even (brick) sort. See Select.
func (e *Engine) OddEven() { e.Select(algorithm.OddEven) }

// QuickSort selects quick sort. See Select.
func (e *Engine) QuickSort() { e.Select(algorithm.QuickSort) }

// Shuffle selects a Fisher-Yates shuffle. See Select.
func (e *Engine) Shuffle() { e.Select(algorithm.Shuffle) }

// Reverse selects the reverse transform. See Select.
func (e *Engine) Reverse() { e.Select(algorithm.Reverse) }

// ensureRecorded runs the current algorithm against the work buffer if it
// has not run since the last Select. Caller must hold e.mu.
func (e *Engine) ensureRecorded() {
	if e.recorded {
		return
	}
	// A panic mid-recording leaves the engine unrecorded with an empty log.
	defer func() {
		if !e.recorded {
			e.log.Reset()
			e.playback.Rewind()
			clear(e.buffer)
			e.buffer = e.buffer[:0]
		}
	}()

	e.log.Reset()
	e.playback.Rewind()
	e.buffer = e.array.CopyInto(e.buffer)
	e.initial = append(e.initial[:0], e.buffer...)

	if e.current != algorithm.None {
		rec := &recorder{
			name:   e.current.String(),
			buffer: e.buffer,
			log:    e.log,
			quota:  NewQuotaEnforcer(e.maxOps),
		}
		algorithm.Run(e.current, rec, len(e.buffer), e.rng)
		e.verifyBuffer()
	}

	e.log.Freeze()
	clear(e.buffer)
	e.buffer = e.buffer[:0]
	e.recorded = true
	e.recSeq = e.clock.Next()
	e.recID = e.ids.Generate()

	e.logger.Debug("recording complete",
		"algorithm", e.current.String(),
		"size", e.array.Size(),
		"operations", e.log.Len(),
		"seq", e.recSeq,
	)
}

// verifyBuffer checks the recorded end state. Caller must hold e.mu.
func (e *Engine) verifyBuffer() {
	name := e.current.String()
	if !array.IsPermutation(e.buffer) {
		panic(&InvariantError{
			Code:      ErrCodeNotPermutation,
			Message:   "recording did not preserve the permutation",
			Algorithm: name,
			Size:      len(e.buffer),
		})
	}
	if !e.current.IsTransform() && !array.IsSorted(e.buffer) {
		panic(&InvariantError{
			Code:      ErrCodeNotSorted,
			Message:   "sort finished with unsorted values",
			Algorithm: name,
			Size:      len(e.buffer),
		})
	}
}

// Tick applies the next recorded operation, recording first if needed.
// Returns false, without touching the array, once the log is exhausted.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ensureRecorded()
	return e.playback.Step()
}

// Flush applies every remaining recorded operation.
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ensureRecorded()
	e.playback.Drain()
}

// Frame applies FrameBudget(len, seconds, frameRate) operations, so that
// the whole log plays in about seconds worth of calls.
//
// Returns false as soon as a step finds the log exhausted, true otherwise.
// An empty log has a budget of 0, so Frame applies nothing and returns true;
// callers looping on Frame should also stop at Complete.
func (e *Engine) Frame(seconds float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ensureRecorded()
	n := FrameBudget(e.log.Len(), seconds, e.frameRate)
	return e.playback.Advance(n)
}

// Size returns the number of cells.
func (e *Engine) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.array.Size()
}

// Values returns a copy of the visible values.
func (e *Engine) Values() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.array.Values()
}

// Operation returns the most recently applied operation. The second result
// is false if nothing has been applied since the last Select.
func (e *Engine) Operation() (op.Operation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playback.Last()
}

// Reads returns the number of reads applied since the last reset.
func (e *Engine) Reads() int { return e.Stats().Reads }

// Writes returns the number of writes applied since the last reset.
func (e *Engine) Writes() int { return e.Stats().Writes }

// Compares returns the number of compares applied since the last reset.
func (e *Engine) Compares() int { return e.Stats().Compares }

// Swaps returns the number of swaps applied since the last reset.
func (e *Engine) Swaps() int { return e.Stats().Swaps }

// Stats returns all four counters at once.
func (e *Engine) Stats() array.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.array.Stats()
}

// ResetStats zeroes the counters. Values, log and cursor are untouched.
func (e *Engine) ResetStats() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.array.ResetStats()
}

// Current returns the selected algorithm.
func (e *Engine) Current() algorithm.ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Cursor returns the index of the next operation to apply.
func (e *Engine) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playback.Cursor()
}

// Len returns the length of the recorded log (0 while unrecorded).
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.Len()
}

// State returns the playback phase.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case !e.recorded:
		return Unrecorded
	case e.playback.Remaining() > 0:
		return Advancing
	default:
		return Complete
	}
}

// Seed returns the seed of the engine's generator.
func (e *Engine) Seed() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seed
}

// Recording returns the current recording, running the algorithm first if
// needed. The returned slices are copies.
func (e *Engine) Recording() Recording {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ensureRecorded()
	initial := make([]int, len(e.initial))
	copy(initial, e.initial)

	return Recording{
		ID:         e.recID,
		Seq:        e.recSeq,
		Algorithm:  e.current,
		Seed:       e.seed,
		Initial:    initial,
		Operations: e.log.Operations(),
	}
}

// TryFlush is Flush for callers that must not crash: a typed invariant
// panic raised while recording is returned as an error instead.
func (e *Engine) TryFlush() (err error) {
	name := e.Current().String()
	defer func() {
		if r := recover(); r != nil {
			err = recoverInvariant(r)
			e.logger.Error("recording failed", "algorithm", name, "error", err)
		}
	}()
	e.Flush()
	return nil
}
