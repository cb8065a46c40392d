package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortplay/internal/engine"
	"github.com/roach88/sortplay/internal/store"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	sessionFlags
	Database string

	// IDGenerator overrides recording IDs (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator engine.IDGenerator
}

// RecordResult describes the stored recording.
type RecordResult struct {
	ID         string `json:"id"`
	Algorithm  string `json:"algorithm"`
	Size       int    `json:"size"`
	Seed       int64  `json:"seed"`
	Seq        int64  `json:"seq"`
	Operations int    `json:"operations"`
	LogHash    string `json:"log_hash"`
	Inserted   bool   `json:"inserted"`
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record <algorithm>",
		Short: "Record an algorithm and store its operation log",
		Long: `Shuffle an array, record the chosen algorithm against it and store the
recording (initial values, seed and full operation log) in SQLite.

The database is created if it doesn't exist. Recording sequence numbers
continue from the highest one already stored.

Examples:
  sortplay record bubble --db ./sortplay.db --size 32
  sortplay record heap --db ./sortplay.db --seed 7 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, args[0], cmd)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $SORTPLAY_DB or sortplay.db)")

	return cmd
}

func runRecord(opts *RecordOptions, name string, cmd *cobra.Command) error {
	ctx := context.Background()

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
	if !cmd.Flags().Changed("db") {
		opts.Database = cfg.Database
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	logger.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	lastSeq, err := st.GetLastSeq(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read last sequence", err)
	}

	ids := opts.IDGenerator
	if ids == nil {
		ids = engine.UUIDv7Generator{}
	}
	eng := newSessionEngine(&opts.sessionFlags, cfg, logger,
		engine.WithClock(engine.NewClockAt(lastSeq)),
		engine.WithIDGenerator(ids),
	)

	if err := prepare(eng, &opts.sessionFlags, id); err != nil {
		return outputEngineError(opts.RootOptions, cmd, err)
	}

	var rec engine.Recording
	if err := guard(func() { rec = eng.Recording() }); err != nil {
		return outputEngineError(opts.RootOptions, cmd, engineFailure(err))
	}

	hash, err := rec.Hash()
	if err != nil {
		return WrapExitError(ExitFailure, "failed to hash recording", err)
	}

	inserted, err := st.WriteRecording(ctx, rec)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to store recording", err)
	}

	logger.Info("recording stored",
		"id", rec.ID,
		"algorithm", rec.Algorithm.String(),
		"operations", len(rec.Operations),
		"seq", rec.Seq,
	)

	result := RecordResult{
		ID:         rec.ID,
		Algorithm:  rec.Algorithm.String(),
		Size:       rec.Size(),
		Seed:       rec.Seed,
		Seq:        rec.Seq,
		Operations: len(rec.Operations),
		LogHash:    hash,
		Inserted:   inserted,
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: result, TraceID: rec.ID})
	}

	fmt.Fprintln(cmd.OutOrStdout(), rec.ID)
	if opts.Verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s, %d values, %d operations, seq %d\n",
			result.Algorithm, result.Size, result.Operations, result.Seq)
	}
	return nil
}
