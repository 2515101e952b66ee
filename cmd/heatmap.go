package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

// heatmapCmd prints the directory rollup of per-file scores.
var heatmapCmd = &cobra.Command{
	Use:   "heatmap [workspace-path]",
	Short: "Show per-file debt scores rolled up into a directory tree.",
	Long: `Fold the flat list of file scores into a directory tree.

Leaves carry their file's composite score and size; directories are pure
aggregation points with no score of their own. The tree is rebuilt from the
latest scores, falling back to the durable store when no scan ran in this
process.

Examples:
  # Show the heatmap for the current workspace
  debtengine heatmap

  # Emit the tree as JSON for a UI
  debtengine heatmap --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := engine.ExecuteHeatmap(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot build heatmap", err)
		}
	},
}
