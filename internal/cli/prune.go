package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortplay/internal/store"
)

// PruneOptions holds flags for the prune command.
type PruneOptions struct {
	*RootOptions
	Database  string
	IDs       []string
	Algorithm string
}

// PruneResult lists the recordings prune removed.
type PruneResult struct {
	Deleted []string `json:"deleted"`
	Total   int      `json:"total"`
}

// NewPruneCommand creates the prune command.
func NewPruneCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PruneOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete stored recordings",
		Long: `Delete recordings, with their operation logs, by ID or by algorithm.

Every --id must exist; nothing is deleted otherwise.

Examples:
  sortplay prune --db ./sortplay.db --id 0190f5a2-...
  sortplay prune --db ./sortplay.db --algorithm shuffle`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringSliceVar(&opts.IDs, "id", nil, "recording ID to delete (repeatable)")
	cmd.Flags().StringVar(&opts.Algorithm, "algorithm", "", "delete every recording of this algorithm")
	cmd.MarkFlagsMutuallyExclusive("id", "algorithm")
	cmd.MarkFlagsOneRequired("id", "algorithm")

	return cmd
}

func runPrune(opts *PruneOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ids, err := pruneTargets(ctx, st, opts)
	if err != nil {
		return err
	}

	result := PruneResult{Deleted: make([]string, 0, len(ids))}
	for _, id := range ids {
		if err := st.DeleteRecording(ctx, id); err != nil {
			return WrapExitError(ExitFailure, "failed to delete recording", err)
		}
		result.Deleted = append(result.Deleted, id)
	}
	result.Total = len(result.Deleted)

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: result})
	}
	w := cmd.OutOrStdout()
	for _, id := range result.Deleted {
		fmt.Fprintf(w, "deleted %s\n", id)
	}
	fmt.Fprintf(w, "Pruned %d recording(s)\n", result.Total)
	return nil
}

// pruneTargets resolves the flags to recording IDs, checking that each
// explicit ID exists.
func pruneTargets(ctx context.Context, st *store.Store, opts *PruneOptions) ([]string, error) {
	if opts.Algorithm != "" {
		id, err := parseAlgorithmArg(opts.Algorithm)
		if err != nil {
			return nil, err
		}
		summaries, err := st.ListRecordingsFor(ctx, id)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to list recordings", err)
		}
		ids := make([]string, 0, len(summaries))
		for _, s := range summaries {
			ids = append(ids, s.ID)
		}
		return ids, nil
	}

	for _, id := range opts.IDs {
		_, err := st.ReadSummary(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewExitError(ExitCommandError, "recording not found: "+id)
		}
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read recording", err)
		}
	}
	return opts.IDs, nil
}
