package engine

import (
	"math"

	"github.com/roach88/sortplay/internal/array"
	"github.com/roach88/sortplay/internal/op"
)

// State is the playback phase of an Engine.
type State int

const (
	// Unrecorded means the current selection has not been run yet.
	Unrecorded State = iota
	// Advancing means the log is recorded and operations remain.
	Advancing
	// Complete means every recorded operation has been applied.
	Complete
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unrecorded:
		return "unrecorded"
	case Advancing:
		return "advancing"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// DefaultFrameRate is the display rate Frame paces against.
const DefaultFrameRate = 60.0

// Playback applies a frozen log to a target array, one entry at a time.
type Playback struct {
	target *array.Array
	log    *op.Log
	cursor int
}

// NewPlayback creates a playback of log onto target with the cursor at 0.
func NewPlayback(target *array.Array, log *op.Log) *Playback {
	return &Playback{target: target, log: log}
}

// Step applies the entry at the cursor and advances it.
// Returns false, without touching the array, when the log is exhausted.
func (p *Playback) Step() bool {
	if p.cursor >= p.log.Len() {
		return false
	}
	p.target.Apply(p.log.At(p.cursor))
	p.cursor++
	return true
}

// Advance performs up to n steps. Returns false as soon as a step finds the
// log exhausted.
func (p *Playback) Advance(n int) bool {
	for i := 0; i < n; i++ {
		if !p.Step() {
			return false
		}
	}
	return true
}

// Drain applies every remaining entry and returns how many were applied.
func (p *Playback) Drain() int {
	n := 0
	for p.Step() {
		n++
	}
	return n
}

// Rewind moves the cursor back to 0. The array is not restored.
func (p *Playback) Rewind() {
	p.cursor = 0
}

// Cursor returns the index of the next entry to apply.
func (p *Playback) Cursor() int {
	return p.cursor
}

// Remaining returns the number of entries not yet applied.
func (p *Playback) Remaining() int {
	return p.log.Len() - p.cursor
}

// Last returns the most recently applied entry.
func (p *Playback) Last() (op.Operation, bool) {
	if p.cursor == 0 {
		return op.Operation{}, false
	}
	return p.log.At(p.cursor - 1), true
}

// FrameBudget returns how many operations one frame applies so that a log
// of length total plays in about seconds at frameRate frames per second:
//
//	ceil(total / (frameRate * seconds))
//
// A non-positive seconds (or frameRate) plays the whole log in one frame.
// The budget is at least 1 whenever total > 0.
func FrameBudget(total int, seconds, frameRate float64) int {
	if total <= 0 {
		return 0
	}
	frames := frameRate * seconds
	if !(frames > 0) {
		return total
	}
	n := int(math.Ceil(float64(total) / frames))
	if n < 1 {
		n = 1
	}
	return n
}
