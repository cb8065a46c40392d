package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/config"
	"github.com/roach88/sortplay/internal/engine"
)

// sessionFlags are the array flags shared by sort, play and record.
type sessionFlags struct {
	Size    int
	Seed    int64
	Shuffle bool
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.Size, "size", 0, "number of cells (default $SORTPLAY_SIZE or 64)")
	cmd.Flags().Int64Var(&f.Seed, "seed", 0, "shuffle seed, 0 picks one (default $SORTPLAY_SEED)")
	cmd.Flags().BoolVar(&f.Shuffle, "shuffle", true, "shuffle before sorting")
}

// resolve fills flags the user did not set from cfg.
func (f *sessionFlags) resolve(cmd *cobra.Command, cfg config.Config) error {
	if !cmd.Flags().Changed("size") {
		f.Size = cfg.Size
	}
	if !cmd.Flags().Changed("seed") {
		f.Seed = cfg.Seed
	}
	if f.Size < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("size must be >= 0, got %d", f.Size))
	}
	return nil
}

// parseAlgorithmArg resolves a command-line algorithm name.
func parseAlgorithmArg(name string) (algorithm.ID, error) {
	id, ok := algorithm.Parse(name)
	if !ok {
		return algorithm.None, WrapExitError(ExitCommandError, "invalid algorithm", &engine.UnknownAlgorithmError{
			Name:  name,
			Known: algorithmNames(),
		})
	}
	return id, nil
}

func algorithmNames() []string {
	names := make([]string, 0, len(algorithm.All()))
	for _, id := range algorithm.All() {
		names = append(names, id.String())
	}
	return names
}

// newSessionEngine builds an engine for one command run.
func newSessionEngine(f *sessionFlags, cfg config.Config, logger *slog.Logger, extra ...engine.Option) *engine.Engine {
	opts := []engine.Option{
		engine.WithSeed(f.Seed),
		engine.WithMaxOperations(cfg.MaxOperations),
		engine.WithFrameRate(cfg.FrameRate),
		engine.WithLogger(logger),
	}
	return engine.New(f.Size, append(opts, extra...)...)
}

// prepare shuffles (if requested) and selects id, leaving it unrecorded.
func prepare(eng *engine.Engine, f *sessionFlags, id algorithm.ID) error {
	if f.Shuffle {
		eng.Shuffle()
		if err := eng.TryFlush(); err != nil {
			return engineFailure(err)
		}
	}
	eng.Select(id)
	return nil
}

// guard runs fn and turns a typed engine panic into an error.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			var inv *engine.InvariantError
			var quota *engine.StepsExceededError
			if !ok || !(errors.As(e, &inv) || errors.As(e, &quota)) {
				panic(r)
			}
			err = e
		}
	}()
	fn()
	return nil
}

// engineFailure maps an engine error to an exit error.
func engineFailure(err error) error {
	return WrapExitError(ExitFailure, "recording failed", err)
}

// errorCode returns the JSON error code for an engine error.
func errorCode(err error) string {
	var inv *engine.InvariantError
	if errors.As(err, &inv) {
		return "E_" + string(inv.Code)
	}
	if engine.IsStepsExceededError(err) {
		return "E_QUOTA"
	}
	return "E_FAILED"
}
