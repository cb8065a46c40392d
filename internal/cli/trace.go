package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortplay/internal/op"
	"github.com/roach88/sortplay/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	ID       string
	Offset   int
	Limit    int // 0 means the rest of the log
}

// TraceLine is one operation and its position in the log.
type TraceLine struct {
	Position int          `json:"position"`
	Op       op.Operation `json:"op"`
}

// TraceResult holds the trace output.
type TraceResult struct {
	Recording  store.Summary `json:"recording"`
	Operations []TraceLine   `json:"operations"`
	Counts     op.Counts     `json:"counts"` // counts over the printed window
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the operation log of a stored recording",
		Long: `Print the operations of a stored recording in log order.

Use --offset and --limit to page through long logs.

Examples:
  sortplay trace --db ./sortplay.db --id 0190f5a2-...
  sortplay trace --db ./sortplay.db --id 0190f5a2-... --offset 100 --limit 20
  sortplay trace --db ./sortplay.db --id 0190f5a2-... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.ID, "id", "", "recording ID to trace (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "first log position to print")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum operations to print (0 = all)")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	if opts.Offset < 0 || opts.Limit < 0 {
		return NewExitError(ExitCommandError, "offset and limit must be >= 0")
	}

	// Open database
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	summary, err := st.ReadSummary(ctx, opts.ID)
	if errors.Is(err, sql.ErrNoRows) {
		if opts.Format == "json" {
			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			_ = f.Error("E_NOT_FOUND", fmt.Sprintf("recording not found: %s", opts.ID), nil)
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("recording not found: %s", opts.ID))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read recording", err)
	}

	limit := opts.Limit
	if limit == 0 {
		limit = -1
	}
	ops, err := st.ReadOperations(ctx, opts.ID, opts.Offset, limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read operations", err)
	}

	result := TraceResult{
		Recording:  summary,
		Operations: make([]TraceLine, len(ops)),
	}
	for i, o := range ops {
		result.Operations[i] = TraceLine{Position: opts.Offset + i, Op: o}
		result.Counts.Add(o.Kind)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: result, TraceID: summary.ID})
	}

	return outputTraceText(cmd, result)
}

// outputTraceText outputs the trace as text.
func outputTraceText(cmd *cobra.Command, result TraceResult) error {
	w := cmd.OutOrStdout()
	s := result.Recording

	fmt.Fprintf(w, "Recording: %s\n", s.ID)
	fmt.Fprintf(w, "Algorithm: %s (%d values, seed %d)\n", s.Algorithm, s.Size, s.Seed)
	fmt.Fprintf(w, "Operations: %d\n", s.OperationCount)
	fmt.Fprintln(w)

	if len(result.Operations) == 0 {
		fmt.Fprintln(w, "(no operations in range)")
		return nil
	}

	for _, line := range result.Operations {
		fmt.Fprintf(w, "%8d  %s\n", line.Position, line.Op)
	}

	c := result.Counts
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Shown: %d (reads=%d writes=%d compares=%d swaps=%d)\n",
		len(result.Operations), c.Reads, c.Writes, c.Compares, c.Swaps)
	return nil
}
