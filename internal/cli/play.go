package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/roach88/sortplay/internal/array"
	"github.com/roach88/sortplay/internal/engine"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	sessionFlags
	Seconds float64
	FPS     float64
}

// PlayResult summarizes one playback.
type PlayResult struct {
	Algorithm   string      `json:"algorithm"`
	Size        int         `json:"size"`
	Seed        int64       `json:"seed"`
	Frames      int         `json:"frames"`
	Operations  int         `json:"operations"`
	Applied     int         `json:"applied"`
	ElapsedMS   int64       `json:"elapsed_ms"`
	Interrupted bool        `json:"interrupted"`
	Sorted      bool        `json:"sorted"`
	Values      []int       `json:"values"`
	Stats       array.Stats `json:"stats"`
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play <algorithm>",
		Short: "Play an algorithm back frame by frame",
		Long: `Shuffle an array, then play the chosen algorithm back at a fixed frame
rate so that the whole recording takes about --seconds.

Each frame applies ceil(operations / (fps * seconds)) operations. Text output
prints one progress line per frame; JSON output prints a summary at the end.
Press Ctrl-C to stop early.

Examples:
  sortplay play bubble --size 32
  sortplay play heap --size 256 --seconds 10 --fps 30
  sortplay play quickSort --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, args[0], cmd)
		},
	}

	opts.register(cmd)
	cmd.Flags().Float64Var(&opts.Seconds, "seconds", 0, "target playback duration (default $SORTPLAY_SECONDS or 5)")
	cmd.Flags().Float64Var(&opts.FPS, "fps", 0, "frames per second (default $SORTPLAY_FRAME_RATE or 60)")

	return cmd
}

func runPlay(opts *PlayOptions, name string, cmd *cobra.Command) error {
	id, err := parseAlgorithmArg(name)
	if err != nil {
		return err
	}

	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	if err := opts.resolve(cmd, cfg); err != nil {
		return err
	}
	if !cmd.Flags().Changed("seconds") {
		opts.Seconds = cfg.Seconds
	}
	if !cmd.Flags().Changed("fps") {
		opts.FPS = cfg.FrameRate
	}
	if opts.FPS <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("fps must be > 0, got %v", opts.FPS))
	}
	cfg.FrameRate = opts.FPS

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	eng := newSessionEngine(&opts.sessionFlags, cfg, logger)

	if err := prepare(eng, &opts.sessionFlags, id); err != nil {
		return outputEngineError(opts.RootOptions, cmd, err)
	}

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping playback", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	result, err := playFrames(ctx, eng, opts, cmd)
	if err != nil {
		return outputEngineError(opts.RootOptions, cmd, engineFailure(err))
	}
	result.Algorithm = id.String()

	logger.Debug("playback finished",
		"algorithm", result.Algorithm,
		"frames", result.Frames,
		"applied", result.Applied,
		"interrupted", result.Interrupted,
	)

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: result})
	}

	w := cmd.OutOrStdout()
	status := "done"
	if result.Interrupted {
		status = "interrupted"
	}
	fmt.Fprintf(w, "%s %s: %d frames, %d/%d operations in %dms\n",
		status, result.Algorithm, result.Frames, result.Applied, result.Operations, result.ElapsedMS)
	fmt.Fprintf(w, "  reads=%d writes=%d compares=%d swaps=%d sorted=%v\n",
		result.Stats.Reads, result.Stats.Writes, result.Stats.Compares, result.Stats.Swaps, result.Sorted)
	return nil
}

// playFrames calls Frame at the limiter's cadence until the log runs out or
// ctx is cancelled.
func playFrames(ctx context.Context, eng *engine.Engine, opts *PlayOptions, cmd *cobra.Command) (PlayResult, error) {
	limiter := rate.NewLimiter(rate.Limit(opts.FPS), 1)
	text := opts.Format != "json"
	w := cmd.OutOrStdout()

	var result PlayResult
	start := time.Now()

	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				result.Interrupted = true
				break
			}
			return result, err
		}

		var more bool
		if err := guard(func() { more = eng.Frame(opts.Seconds) }); err != nil {
			return result, err
		}
		result.Frames++
		if text {
			fmt.Fprintf(w, "frame %d: %d/%d\n", result.Frames, eng.Cursor(), eng.Len())
		}
		if !more || eng.State() == engine.Complete {
			break
		}
	}

	result.ElapsedMS = time.Since(start).Milliseconds()
	result.Size = eng.Size()
	result.Seed = eng.Seed()
	result.Operations = eng.Len()
	result.Applied = eng.Cursor()
	result.Values = eng.Values()
	result.Sorted = array.IsSorted(result.Values)
	result.Stats = eng.Stats()
	return result, nil
}
