package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/sortplay/internal/array"
	"github.com/roach88/sortplay/internal/op"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Seed         int64        `json:"seed"`
	Trace        []TraceEvent `json:"trace"`
	Final        []int        `json:"final"`
	Stats        array.Stats  `json:"stats"`
	Recordings   []string     `json:"recordings"`
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
// This is required because op.MarshalCanonical only handles a fixed set of types.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		traceList[i] = map[string]any{
			"step":      event.Step,
			"algorithm": event.Algorithm,
			"position":  event.Position,
			"op":        event.Op,
		}
	}

	final := s.Final
	if final == nil {
		final = []int{}
	}

	recs := make([]any, len(s.Recordings))
	for i, id := range s.Recordings {
		recs[i] = id
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"seed":          s.Seed,
		"trace":         traceList,
		"final":         final,
		"recordings":    recs,
		"stats": map[string]any{
			"reads":    s.Stats.Reads,
			"writes":   s.Stats.Writes,
			"compares": s.Stats.Compares,
			"swaps":    s.Stats.Swaps,
		},
	}
}

// Marshal renders the snapshot as canonical JSON.
func (s *TraceSnapshot) Marshal() ([]byte, error) {
	return op.MarshalCanonical(s.toCanonicalMap())
}

// NewSnapshot builds the golden snapshot for a finished run.
func NewSnapshot(scenario *Scenario, result *Result) *TraceSnapshot {
	seed := scenario.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	return &TraceSnapshot{
		ScenarioName: scenario.Name,
		Seed:         seed,
		Trace:        result.Trace,
		Final:        result.Final,
		Stats:        result.Stats,
		Recordings:   result.Recordings,
	}
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	data, err := NewSnapshot(scenario, result).Marshal()
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(scenario, result).Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
