package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortplay/internal/algorithm"
	"github.com/roach88/sortplay/internal/engine"
	"github.com/roach88/sortplay/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database  string
	ID        string // optional - specific recording only
	Algorithm string // optional - recordings of one algorithm only
}

// ReplayRecordingResult holds the verification result for one recording.
type ReplayRecordingResult struct {
	ID         string   `json:"id"`
	Algorithm  string   `json:"algorithm"`
	Size       int      `json:"size"`
	Operations int      `json:"operations"`
	Sorted     bool     `json:"sorted"`
	HashMatch  bool     `json:"hash_match"`
	Verified   bool     `json:"verified"`
	Errors     []string `json:"errors,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Recordings  []ReplayRecordingResult `json:"recordings"`
	Total       int                     `json:"total"`
	AllVerified bool                    `json:"all_verified"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay stored recordings and verify them",
		Long: `Replay every stored recording (or one, with --id, or those of one
algorithm, with --algorithm) into a fresh array twice and verify it.

A recording verifies when both replays agree, its log hash matches the
stored one, the Compare/Swap pairing holds, the counters match the log and
the final values are what the algorithm promises (sorted, or exactly
reversed for reverse).

Exit codes:
  0 - All recordings verified
  1 - Verification failed
  2 - Command error (database not found, unknown recording, etc.)

Examples:
  sortplay replay --db ./sortplay.db
  sortplay replay --db ./sortplay.db --id 0190f5a2-...
  sortplay replay --db ./sortplay.db --algorithm heap
  sortplay replay --db ./sortplay.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.ID, "id", "", "replay specific recording only")
	cmd.Flags().StringVar(&opts.Algorithm, "algorithm", "", "replay recordings of one algorithm only")
	cmd.MarkFlagsMutuallyExclusive("id", "algorithm")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	filter := algorithm.None
	if opts.Algorithm != "" {
		id, err := parseAlgorithmArg(opts.Algorithm)
		if err != nil {
			return err
		}
		filter = id
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var summaries []store.Summary
	switch {
	case opts.ID != "":
		s, err := st.ReadSummary(ctx, opts.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitCommandError, fmt.Sprintf("recording not found: %s", opts.ID))
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read recording", err)
		}
		summaries = []store.Summary{s}
	case opts.Algorithm != "":
		summaries, err = st.ListRecordingsFor(ctx, filter)
	default:
		summaries, err = st.ListRecordings(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list recordings", err)
	}

	result := ReplayResult{
		Recordings:  make([]ReplayRecordingResult, 0, len(summaries)),
		Total:       len(summaries),
		AllVerified: true,
	}

	if len(summaries) == 0 {
		if opts.Format == "json" {
			return outputReplayJSON(cmd, result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No recordings found in database.")
		return nil
	}

	for _, s := range summaries {
		r, err := replayAndVerify(ctx, st, s)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay recording %s", s.ID), err)
		}

		result.Recordings = append(result.Recordings, r)
		if !r.Verified {
			result.AllVerified = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// replayAndVerify loads one recording and verifies it against its summary.
func replayAndVerify(ctx context.Context, st *store.Store, s store.Summary) (ReplayRecordingResult, error) {
	rec, err := st.ReadRecording(ctx, s.ID)
	if err != nil {
		return ReplayRecordingResult{}, err
	}

	r := ReplayRecordingResult{
		ID:         s.ID,
		Algorithm:  s.Algorithm,
		Size:       s.Size,
		Operations: len(rec.Operations),
	}

	v, err := engine.Verify(rec)
	if err != nil {
		// A log that cannot even be replayed is a verification failure.
		r.Errors = append(r.Errors, err.Error())
		return r, nil
	}

	r.Sorted = v.Sorted
	r.HashMatch = v.Hash == s.LogHash
	r.Errors = append(r.Errors, v.Errors...)
	if !r.HashMatch {
		r.Errors = append(r.Errors, fmt.Sprintf("log hash %s does not match stored %s", v.Hash, s.LogHash))
	}
	if r.Operations != s.OperationCount {
		r.Errors = append(r.Errors, fmt.Sprintf("%d operations stored, header says %d", r.Operations, s.OperationCount))
	}
	r.Verified = len(r.Errors) == 0
	return r, nil
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllVerified {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_VERIFY",
			Message: "replay verification failed",
		}
	}

	if err := writeJSON(cmd.OutOrStdout(), response); err != nil {
		return err
	}

	if !result.AllVerified {
		// Verification failure = exit code 1
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay Summary: %d recording(s)\n", result.Total)
	fmt.Fprintln(w)

	for _, r := range result.Recordings {
		status := "✓"
		if !r.Verified {
			status = "✗"
		}

		fmt.Fprintf(w, "%s %s (%s, %d values)\n", status, r.ID, r.Algorithm, r.Size)
		if verbose {
			fmt.Fprintf(w, "  Operations: %d\n", r.Operations)
			fmt.Fprintf(w, "  Sorted: %v\n", r.Sorted)
			fmt.Fprintf(w, "  Hash match: %v\n", r.HashMatch)
		}
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	fmt.Fprintln(w)

	if result.AllVerified {
		fmt.Fprintln(w, "✓ All recordings verified")
		return nil
	}

	fmt.Fprintln(w, "✗ Replay verification failed")
	// Verification failure = exit code 1
	return NewExitError(ExitFailure, "replay verification failed")
}
