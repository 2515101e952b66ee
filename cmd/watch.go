package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

// watchCmd keeps scores fresh while files change.
var watchCmd = &cobra.Command{
	Use:   "watch [workspace-path]",
	Short: "Watch the workspace and rescore files as they change.",
	Long: `Watch the workspace tree and run the incremental rescore path for every
source file that changes, after a short debounce.

Workspace context (churn, blame, co-change tables) is memoized briefly, so a
burst of saves does not re-read git history once per file. Stop with Ctrl-C.

Examples:
  # Keep scores fresh during a refactoring session
  debtengine watch

  # Watch another workspace
  debtengine watch ~/src/payments`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := engine.ExecuteWatch(ctx, cfg); err != nil {
			contract.LogFatal("Cannot watch workspace", err)
		}
	},
}
