package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/engine"
	"github.com/roach88/sortplay/internal/op"
)

// Scenario defines a scripted playback run.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Size is the number of cells in the array.
	Size int `yaml:"size"`

	// Seed seeds shuffles. 0 is replaced by 1 so runs stay reproducible.
	Seed int64 `yaml:"seed,omitempty"`

	// FrameRate overrides the engine's frames per second for frame steps.
	FrameRate float64 `yaml:"frame_rate,omitempty"`

	// Steps drive the engine in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one engine call. Exactly one field must be set.
type Step struct {
	// Select makes the named algorithm current.
	Select string `yaml:"select,omitempty"`

	// Flush applies the rest of the log.
	Flush bool `yaml:"flush,omitempty"`

	// Ticks applies up to this many single operations.
	Ticks int `yaml:"ticks,omitempty"`

	// Frame calls Frame once with this many seconds.
	Frame *float64 `yaml:"frame,omitempty"`

	// ResetStats zeroes the counters.
	ResetStats bool `yaml:"reset_stats,omitempty"`
}

// String describes the step for traces and error messages.
func (s Step) String() string {
	switch {
	case s.Select != "":
		return "select " + s.Select
	case s.Flush:
		return "flush"
	case s.Ticks > 0:
		return fmt.Sprintf("ticks %d", s.Ticks)
	case s.Frame != nil:
		return fmt.Sprintf("frame %g", *s.Frame)
	case s.ResetStats:
		return "reset_stats"
	default:
		return "empty"
	}
}

func (s Step) actions() int {
	n := 0
	if s.Select != "" {
		n++
	}
	if s.Flush {
		n++
	}
	if s.Ticks != 0 {
		n++
	}
	if s.Frame != nil {
		n++
	}
	if s.ResetStats {
		n++
	}
	return n
}

// Assertion validates the final engine state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "values": visible values equal Values exactly
	// - "sorted": visible values are non-decreasing
	// - "permutation": visible values are a permutation of 1..size
	// - "counters": listed counters match Counters
	// - "exhausted": the log has been fully applied
	// - "state": playback state equals State
	// - "last_operation": last applied operation renders as Operation
	// - "log_length": the log has exactly Length operations
	// - "recordings": exactly Length recordings were stored
	// - "verified": every stored recording replays and verifies
	Type string `yaml:"type"`

	// Values are the expected visible values (used by values).
	Values []int `yaml:"values,omitempty"`

	// Counters are the expected counters (used by counters).
	Counters *CounterExpect `yaml:"counters,omitempty"`

	// State is "unrecorded", "advancing" or "complete" (used by state).
	State string `yaml:"state,omitempty"`

	// Operation is e.g. "Write(0, 5)", "Compare" or "none" (used by
	// last_operation).
	Operation string `yaml:"operation,omitempty"`

	// Length is the expected log length (used by log_length) or recording
	// count (used by recordings).
	Length *int `yaml:"length,omitempty"`
}

// CounterExpect lists expected counters. Nil fields are not checked.
type CounterExpect struct {
	Reads    *int `yaml:"reads,omitempty"`
	Writes   *int `yaml:"writes,omitempty"`
	Compares *int `yaml:"compares,omitempty"`
	Swaps    *int `yaml:"swaps,omitempty"`
}

// Assertion type constants.
const (
	AssertValues        = "values"
	AssertSorted        = "sorted"
	AssertPermutation   = "permutation"
	AssertCounters      = "counters"
	AssertExhausted     = "exhausted"
	AssertState         = "state"
	AssertLastOperation = "last_operation"
	AssertLogLength     = "log_length"
	AssertRecordings    = "recordings"
	AssertVerified      = "verified"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Size < 0 {
		return fmt.Errorf("size must be >= 0, got %d", s.Size)
	}
	if s.FrameRate < 0 {
		return fmt.Errorf("frame_rate must be >= 0, got %v", s.FrameRate)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if n := step.actions(); n != 1 {
			return fmt.Errorf("steps[%d]: exactly one action is required, got %d", i, n)
		}
		if step.Ticks < 0 {
			return fmt.Errorf("steps[%d]: ticks must be > 0", i)
		}
		if step.Select != "" {
			if _, ok := algorithm.Parse(step.Select); !ok {
				return fmt.Errorf("steps[%d]: %w", i, &engine.UnknownAlgorithmError{Name: step.Select})
			}
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertValues:
		if a.Values == nil {
			return fmt.Errorf("assertions[%d]: values is required for values", index)
		}
	case AssertCounters:
		if a.Counters == nil {
			return fmt.Errorf("assertions[%d]: counters is required for counters", index)
		}
	case AssertState:
		switch a.State {
		case engine.Unrecorded.String(), engine.Advancing.String(), engine.Complete.String():
		default:
			return fmt.Errorf("assertions[%d]: unknown state %q", index, a.State)
		}
	case AssertLastOperation:
		if a.Operation == "" {
			return fmt.Errorf("assertions[%d]: operation is required for last_operation", index)
		}
		if a.Operation != "none" {
			if _, err := op.ParseKind(operationKindName(a.Operation)); err != nil {
				return fmt.Errorf("assertions[%d]: %w", index, err)
			}
		}
	case AssertLogLength:
		if a.Length == nil {
			return fmt.Errorf("assertions[%d]: length is required for log_length", index)
		}
	case AssertRecordings:
		if a.Length == nil {
			return fmt.Errorf("assertions[%d]: length is required for recordings", index)
		}
	case AssertSorted, AssertPermutation, AssertExhausted, AssertVerified:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
