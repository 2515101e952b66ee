package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

// snapshotsCmd lists the workspace debt trend.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots [workspace-path]",
	Short: "Show the debt trend across past scans.",
	Long: `List the workspace-level debt snapshots recorded after every full scan:
timestamp, mean composite score, file count and high-debt count, oldest
first.

Snapshots are append-only and pruned to the configured retention, so the list
is the workspace's debt trend over time.

Examples:
  # Show the trend for the current workspace
  debtengine snapshots

  # Export the trend for plotting
  debtengine snapshots --output csv --output-file trend.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := engine.ExecuteSnapshots(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list snapshots", err)
		}
	},
}
