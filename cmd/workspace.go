package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

// workspaceCmd prints workspace metadata and bootstraps on first use.
var workspaceCmd = &cobra.Command{
	Use:   "workspace [workspace-path]",
	Short: "Show workspace metadata and bootstrap the data directory.",
	Long: `Print the workspace's debtengine metadata: the data directory, the
checked-out branch, eligible file count and the time of the last scan.

On first use this creates the .debtengine directory with default settings
and an empty store, so it doubles as the bootstrap command.

Examples:
  debtengine workspace
  debtengine workspace ~/src/payments --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := engine.ExecuteWorkspace(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot inspect workspace", err)
		}
	},
}
