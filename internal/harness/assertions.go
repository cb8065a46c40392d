package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/sortplay/internal/array"
	"github.com/roach88/sortplay/internal/engine"
	"github.com/roach88/sortplay/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Tail of the trace for debugging context
}

// maxTraceContext bounds how many trailing trace events an error prints.
const maxTraceContext = 8

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		tail := e.Trace
		if len(tail) > maxTraceContext {
			tail = tail[len(tail)-maxTraceContext:]
		}
		fmt.Fprintf(&buf, "\nLast %d of %d traced operations:\n", len(tail), len(e.Trace))
		for _, event := range tail {
			fmt.Fprintf(&buf, "  [step %d] %s #%d %s\n", event.Step, event.Algorithm, event.Position, event.Op)
		}
	}

	return buf.String()
}

// AssertionContext provides the state assertions are checked against.
type AssertionContext struct {
	Engine *engine.Engine
	Store  *store.Store
	Ctx    context.Context
}

// EvaluateAssertions checks every assertion and returns one message per
// failure. An empty slice means all passed.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string

	for i, a := range assertions {
		if err := evaluateAssertion(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}

	return errs
}

func evaluateAssertion(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertValues:
		return assertValues(result, a)
	case AssertSorted:
		return assertSorted(result)
	case AssertPermutation:
		return assertPermutation(result)
	case AssertCounters:
		return assertCounters(result, a)
	}

	if actx == nil || actx.Engine == nil {
		return fmt.Errorf("%s assertion requires an engine context", a.Type)
	}

	switch a.Type {
	case AssertExhausted:
		return assertExhausted(result, actx.Engine)
	case AssertState:
		return assertState(result, a, actx.Engine)
	case AssertLastOperation:
		return assertLastOperation(result, a, actx.Engine)
	case AssertLogLength:
		return assertLogLength(result, a, actx.Engine)
	}

	if actx.Store == nil {
		return fmt.Errorf("%s assertion requires a store context", a.Type)
	}

	ctx := actx.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	switch a.Type {
	case AssertRecordings:
		return assertRecordings(ctx, result, a, actx.Store)
	case AssertVerified:
		return assertVerified(ctx, result, actx.Store)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertValues(result *Result, a Assertion) error {
	if slices.Equal(result.Final, a.Values) {
		return nil
	}
	return &AssertionError{
		Type:     AssertValues,
		Expected: fmt.Sprint(a.Values),
		Actual:   fmt.Sprint(result.Final),
		Trace:    result.Trace,
	}
}

func assertSorted(result *Result) error {
	if array.IsSorted(result.Final) {
		return nil
	}
	return &AssertionError{
		Type:     AssertSorted,
		Expected: "non-decreasing values",
		Actual:   fmt.Sprint(result.Final),
		Trace:    result.Trace,
	}
}

func assertPermutation(result *Result) error {
	if array.IsPermutation(result.Final) {
		return nil
	}
	return &AssertionError{
		Type:     AssertPermutation,
		Expected: fmt.Sprintf("a permutation of 1..%d", len(result.Final)),
		Actual:   fmt.Sprint(result.Final),
		Trace:    result.Trace,
	}
}

// assertCounters checks only the counters the assertion lists.
func assertCounters(result *Result, a Assertion) error {
	var mismatches []string
	check := func(name string, want *int, got int) {
		if want != nil && *want != got {
			mismatches = append(mismatches, fmt.Sprintf("%s=%d (want %d)", name, got, *want))
		}
	}
	check("reads", a.Counters.Reads, result.Stats.Reads)
	check("writes", a.Counters.Writes, result.Stats.Writes)
	check("compares", a.Counters.Compares, result.Stats.Compares)
	check("swaps", a.Counters.Swaps, result.Stats.Swaps)

	if len(mismatches) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertCounters,
		Expected: "listed counters to match",
		Actual:   strings.Join(mismatches, ", "),
		Trace:    result.Trace,
	}
}

func assertExhausted(result *Result, eng *engine.Engine) error {
	if eng.State() == engine.Complete {
		return nil
	}
	return &AssertionError{
		Type:     AssertExhausted,
		Expected: "log fully applied",
		Actual:   fmt.Sprintf("%s at %d of %d", eng.State(), eng.Cursor(), eng.Len()),
		Trace:    result.Trace,
	}
}

func assertState(result *Result, a Assertion, eng *engine.Engine) error {
	if got := eng.State().String(); got != a.State {
		return &AssertionError{
			Type:     AssertState,
			Expected: a.State,
			Actual:   got,
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertLastOperation accepts either the full rendering, e.g. "Write(0, 5)",
// or a bare kind name such as "Write".
func assertLastOperation(result *Result, a Assertion, eng *engine.Engine) error {
	actual := "none"
	matched := a.Operation == "none"

	if last, ok := eng.Operation(); ok {
		actual = last.String()
		matched = a.Operation == actual || a.Operation == last.Kind.String()
	}

	if matched {
		return nil
	}
	return &AssertionError{
		Type:     AssertLastOperation,
		Expected: a.Operation,
		Actual:   actual,
		Trace:    result.Trace,
	}
}

func assertLogLength(result *Result, a Assertion, eng *engine.Engine) error {
	if got := eng.Len(); got != *a.Length {
		return &AssertionError{
			Type:     AssertLogLength,
			Expected: fmt.Sprintf("%d operations", *a.Length),
			Actual:   fmt.Sprintf("%d operations", got),
			Trace:    result.Trace,
		}
	}
	return nil
}

func assertRecordings(ctx context.Context, result *Result, a Assertion, st *store.Store) error {
	summaries, err := st.ListRecordings(ctx)
	if err != nil {
		return fmt.Errorf("list recordings: %w", err)
	}
	if len(summaries) != *a.Length {
		return &AssertionError{
			Type:     AssertRecordings,
			Expected: fmt.Sprintf("%d stored recordings", *a.Length),
			Actual:   fmt.Sprintf("%d stored recordings", len(summaries)),
		}
	}
	return nil
}

// assertVerified reads every stored recording back and verifies it.
func assertVerified(ctx context.Context, result *Result, st *store.Store) error {
	summaries, err := st.ListRecordings(ctx)
	if err != nil {
		return fmt.Errorf("list recordings: %w", err)
	}

	var failures []string
	for _, s := range summaries {
		rec, err := st.ReadRecording(ctx, s.ID)
		if err != nil {
			return fmt.Errorf("read recording %s: %w", s.ID, err)
		}
		v, err := engine.Verify(rec)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", s.ID, err))
			continue
		}
		if v.Hash != s.LogHash {
			failures = append(failures, fmt.Sprintf("%s: hash %s does not match stored %s", s.ID, v.Hash, s.LogHash))
		}
		for _, e := range v.Errors {
			failures = append(failures, fmt.Sprintf("%s: %s", s.ID, e))
		}
	}

	if len(failures) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertVerified,
		Expected: "every stored recording to verify",
		Actual:   strings.Join(failures, "; "),
	}
}

// operationKindName strips the argument list from an operation rendering.
func operationKindName(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		return s[:i]
	}
	return s
}
