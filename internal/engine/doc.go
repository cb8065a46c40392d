// Package engine records sorting algorithms and plays them back.
//
// The Engine is the single owner of the visible array, the current
// selection, the operation log and the playback cursor. Nothing else holds
// a mutable reference to any of them.
//
// ARCHITECTURE:
//
// Record once, play at any pace:
//  1. Select stores the algorithm, empties the log, rewinds the cursor and
//     zeroes the counters. Nothing runs yet.
//  2. The first Tick, Flush, Frame or Recording call copies the visible
//     values into the work buffer and runs the algorithm to completion
//     against it through the recorder. Every access becomes an Operation.
//  3. The log is frozen and the work buffer is cleared (its capacity is
//     kept for the next recording).
//  4. Playback applies log entries to the visible array one at a time.
//
// The visible array therefore only changes when the caller advances
// playback, no matter how fast the algorithm ran.
//
// Playback states:
//
//	Unrecorded --(first playback call)--> Advancing --(cursor == len)--> Complete
//	     ^                                                   |
//	     +------------------- Select (any state) ------------+
//
// An empty log goes straight from Unrecorded to Complete.
//
// CONCURRENCY:
//
// Recording and playback never interleave. All public methods take the same
// mutex, so concurrent callers see the state machine above one call at a
// time.
//
// FAILURES:
//
// There is no recoverable error in the core. An out-of-range index, a
// recording that breaks the permutation or leaves a sort unsorted, and an
// exceeded operation quota are defects. They panic with *InvariantError or
// *StepsExceededError. Tick and Frame returning false means the log is
// exhausted. That is normal termination, not a failure.
package engine
