package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/sortplay/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	cfg *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Config returns the environment configuration, loading it on first use.
func (o *RootOptions) Config() (config.Config, error) {
	if o.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return config.Config{}, WrapExitError(ExitCommandError, "invalid configuration", err)
		}
		o.cfg = &cfg
	}
	return *o.cfg, nil
}

// NewRootCommand creates the root command for the sortplay CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sortplay",
		Short: "sortplay - watch sorting algorithms one access at a time",
		Long: `Record sorting algorithms as logs of element accesses and play them back
step by step, frame by frame, or all at once.

Settings default from SORTPLAY_* environment variables; flags override them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(
		NewAlgorithmsCommand(opts),
		NewSortCommand(opts),
		NewPlayCommand(opts),
		NewRecordCommand(opts),
		NewReplayCommand(opts),
		NewTraceCommand(opts),
		NewPruneCommand(opts),
		NewTestCommand(opts),
	)

	return cmd
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
