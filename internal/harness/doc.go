// Package harness runs scripted playback scenarios against the engine.
//
// A scenario fixes the array size and seed, then drives the engine through
// a list of steps and checks assertions against the final state. Every
// operation that playback applies is captured in the trace, which can be
// compared byte-for-byte against a golden file.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: reverse_then_bubble
//	description: "Bubble sort over a reversed array"
//	size: 5
//	seed: 1
//	steps:
//	  - select: reverse
//	  - flush: true
//	  - select: bubble
//	  - ticks: 3
//	  - frame: 0.5
//	  - reset_stats: true
//	assertions:
//	  - type: values
//	    values: [1, 2, 3, 4, 5]
//	  - type: counters
//	    counters: { compares: 10, swaps: 10 }
//	  - type: last_operation
//	    operation: Swap
//
// Each step does exactly one thing. frame takes seconds; frame: 0 plays the
// rest of the log in one call.
//
// # Assertion Types
//
//   - values: the visible values equal the list exactly
//   - sorted: the visible values are non-decreasing
//   - permutation: the visible values are a permutation of 1..size
//   - counters: the listed counters match (unlisted ones are ignored)
//   - exhausted: the current log has been fully applied
//   - state: the playback state is unrecorded, advancing or complete
//   - last_operation: the most recently applied operation, or "none"
//   - log_length: the current log has exactly this many operations
package harness
