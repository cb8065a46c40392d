package harness

import (
	"github.com/roach88/sortplay/internal/array"
	"github.com/roach88/sortplay/internal/op"
)

// TraceEvent is one operation applied to the visible array during a step.
type TraceEvent struct {
	Step      int          `json:"step"`      // index into Scenario.Steps
	Algorithm string       `json:"algorithm"` // algorithm that recorded the op
	Position  int          `json:"position"`  // index of the op in its log
	Op        op.Operation `json:"op"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every assertion held and no step failed.
	Pass bool `json:"pass"`

	// Trace contains every applied operation in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the visible array after the last step.
	Final []int `json:"final"`

	// Stats are the counters after the last step.
	Stats array.Stats `json:"stats"`

	// Recordings lists the IDs of recordings made during the run, in order.
	Recordings []string `json:"recordings"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Trace:      []TraceEvent{},
		Errors:     []string{},
		Final:      []int{},
		Recordings: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends the operations ops, which start at log position from.
func (r *Result) AddTrace(step int, algorithm string, from int, ops []op.Operation) {
	for i, o := range ops {
		r.Trace = append(r.Trace, TraceEvent{
			Step:      step,
			Algorithm: algorithm,
			Position:  from + i,
			Op:        o,
		})
	}
}
