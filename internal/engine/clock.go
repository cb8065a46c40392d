package engine

import "sync/atomic"

// Clock is a monotonic logical clock that stamps recordings.
//
// Each completed recording takes the next seq value. The store orders
// recordings by seq, never by wall-clock time, so listings are stable
// across runs.
//
// Thread-safety: Clock is safe for concurrent use. Several engines may
// share one clock so that their recordings interleave deterministically.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used to resume after the highest seq already in a store.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next increments the clock and returns the new value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
