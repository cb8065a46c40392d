package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortplay/internal/algorithm"
)

// AlgorithmInfo describes one selectable algorithm.
type AlgorithmInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // "sort" or "transform"
}

// NewAlgorithmsCommand creates the algorithms command.
func NewAlgorithmsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List selectable algorithms",
		Long: `List every algorithm that sort, play and record accept.

Names match case-insensitively and ignore '-' and '_', so "oddEven",
"odd-even" and "ODD_EVEN" all select the same algorithm.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlgorithms(rootOpts, cmd)
		},
	}
}

func listAlgorithms() []AlgorithmInfo {
	infos := make([]AlgorithmInfo, 0, len(algorithm.All()))
	for _, id := range algorithm.All() {
		kind := "sort"
		if id.IsTransform() {
			kind = "transform"
		}
		infos = append(infos, AlgorithmInfo{Name: id.String(), Kind: kind})
	}
	return infos
}

func runAlgorithms(opts *RootOptions, cmd *cobra.Command) error {
	infos := listAlgorithms()

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return f.Success(infos)
	}

	w := cmd.OutOrStdout()
	for _, info := range infos {
		fmt.Fprintf(w, "%-10s %s\n", info.Name, info.Kind)
	}
	return nil
}
