package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortplay/internal/array"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	sessionFlags
}

// SortResult holds the outcome of one sort.
type SortResult struct {
	Algorithm  string      `json:"algorithm"`
	Size       int         `json:"size"`
	Seed       int64       `json:"seed"`
	Shuffled   bool        `json:"shuffled"`
	Initial    []int       `json:"initial"`
	Values     []int       `json:"values"`
	Sorted     bool        `json:"sorted"`
	Operations int         `json:"operations"`
	Stats      array.Stats `json:"stats"`
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort <algorithm>",
		Short: "Run an algorithm to completion and print the counters",
		Long: `Build an array of 1..size, shuffle it, then record and flush the
chosen algorithm. Prints the final values and the access counters.

Exit codes:
  0 - Algorithm ran and its invariants held
  1 - Invariant violation or operation quota exceeded
  2 - Command error (unknown algorithm, invalid size, etc.)

Examples:
  sortplay sort bubble --size 16
  sortplay sort quickSort --size 1000 --seed 42 --format json
  sortplay sort insertion --shuffle=false`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, args[0], cmd)
		},
	}

	opts.register(cmd)

	return cmd
}

func runSort(opts *SortOptions, name string, cmd *cobra.Command) error {
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

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	eng := newSessionEngine(&opts.sessionFlags, cfg, logger)

	if err := prepare(eng, &opts.sessionFlags, id); err != nil {
		return outputEngineError(opts.RootOptions, cmd, err)
	}
	if err := eng.TryFlush(); err != nil {
		return outputEngineError(opts.RootOptions, cmd, engineFailure(err))
	}

	rec := eng.Recording()
	values := eng.Values()
	result := SortResult{
		Algorithm:  id.String(),
		Size:       eng.Size(),
		Seed:       eng.Seed(),
		Shuffled:   opts.Shuffle,
		Initial:    rec.Initial,
		Values:     values,
		Sorted:     array.IsSorted(values),
		Operations: eng.Len(),
		Stats:      eng.Stats(),
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: result, TraceID: rec.ID})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %d values, seed %d\n", result.Algorithm, result.Size, result.Seed)
	fmt.Fprintf(w, "  operations: %d\n", result.Operations)
	fmt.Fprintf(w, "  reads=%d writes=%d compares=%d swaps=%d\n",
		result.Stats.Reads, result.Stats.Writes, result.Stats.Compares, result.Stats.Swaps)
	fmt.Fprintf(w, "  sorted: %v\n", result.Sorted)
	if opts.Verbose {
		fmt.Fprintf(w, "  initial: %v\n", result.Initial)
		fmt.Fprintf(w, "  values:  %v\n", result.Values)
	}
	return nil
}

// outputEngineError reports an engine failure in the configured format and
// returns it for the exit code.
func outputEngineError(opts *RootOptions, cmd *cobra.Command, err error) error {
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if outErr := f.Error(errorCode(err), err.Error(), nil); outErr != nil {
		return outErr
	}
	return err
}
