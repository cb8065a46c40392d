package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/sortplay/internal/engine"
	"github.com/roach88/sortplay/internal/store"
	"github.com/roach88/sortplay/internal/testutil"
)

// DefaultSeed replaces a zero scenario seed.
const DefaultSeed int64 = 1

// Harness is the test execution engine.
// It drives one engine with a fixed seed and sequential recording IDs, and
// persists every recording it observes.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	logger *slog.Logger
	seen   map[string]bool
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Deterministic helpers ensure reproducible results.
//
// Execution flow:
// 1. Create fresh in-memory database and engine
// 2. Execute steps, tracing every applied operation
// 3. Persist each recording once it exists
// 4. Evaluate assertions against the final state
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	seed := scenario.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	opts := []engine.Option{
		engine.WithSeed(seed),
		engine.WithIDGenerator(testutil.NewSequentialIDs(scenario.Name)),
		engine.WithLogger(logger),
	}
	if scenario.FrameRate > 0 {
		opts = append(opts, engine.WithFrameRate(scenario.FrameRate))
	}

	h := &Harness{
		store:  st,
		engine: engine.New(scenario.Size, opts...),
		logger: logger,
		seen:   make(map[string]bool),
	}

	ctx := context.Background()
	result := NewResult()

	for i, step := range scenario.Steps {
		if err := h.execute(ctx, i, step, result); err != nil {
			var inv *engine.InvariantError
			var quota *engine.StepsExceededError
			if errors.As(err, &inv) || errors.As(err, &quota) {
				// Engine failures are scenario failures, not harness failures.
				result.AddError(fmt.Sprintf("steps[%d] %s: %v", i, step, err))
				break
			}
			return nil, fmt.Errorf("steps[%d] %s: %w", i, step, err)
		}
	}

	result.Final = h.engine.Values()
	result.Stats = h.engine.Stats()

	actx := &AssertionContext{
		Engine: h.engine,
		Store:  st,
		Ctx:    ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// execute runs one step. Typed engine panics come back as errors.
func (h *Harness) execute(ctx context.Context, index int, step Step, result *Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()

	switch {
	case step.Select != "":
		return h.engine.SelectByName(step.Select)
	case step.ResetStats:
		h.engine.ResetStats()
		return nil
	}

	before := h.engine.Cursor()
	switch {
	case step.Flush:
		h.engine.Flush()
	case step.Ticks > 0:
		for n := 0; n < step.Ticks; n++ {
			if !h.engine.Tick() {
				break
			}
		}
	case step.Frame != nil:
		// Frame(0) plays everything that remains.
		h.engine.Frame(*step.Frame)
	}

	rec := h.engine.Recording()
	after := h.engine.Cursor()
	result.AddTrace(index, rec.Algorithm.String(), before, rec.Operations[before:after])

	return h.persist(ctx, rec, result)
}

// persist stores rec the first time it is seen.
func (h *Harness) persist(ctx context.Context, rec engine.Recording, result *Result) error {
	if h.seen[rec.ID] {
		return nil
	}
	h.seen[rec.ID] = true

	if _, err := h.store.WriteRecording(ctx, rec); err != nil {
		return fmt.Errorf("persist recording: %w", err)
	}
	result.Recordings = append(result.Recordings, rec.ID)

	h.logger.Debug("recording persisted",
		"id", rec.ID,
		"algorithm", rec.Algorithm.String(),
		"operations", len(rec.Operations),
	)
	return nil
}
