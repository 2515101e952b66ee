package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

// pinCmd adds a file to the watchlist.
var pinCmd = &cobra.Command{
	Use:   "pin <file>",
	Short: "Pin a file to the watchlist.",
	Long: `Pin a file so its score is reported after every scan. At most five files
can be pinned at a time; pin the handful you are actively paying down.

Examples:
  debtengine pin core/scheduler.go`,
	Args:    cobra.ExactArgs(1),
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := engine.ExecuteWatchlistPin(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot pin file", err)
		}
	},
}

// unpinCmd removes a file from the watchlist.
var unpinCmd = &cobra.Command{
	Use:     "unpin <file>",
	Short:   "Remove a file from the watchlist.",
	Args:    cobra.ExactArgs(1),
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := engine.ExecuteWatchlistUnpin(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot unpin file", err)
		}
	},
}

// pinsCmd lists the watchlist with current scores.
var pinsCmd = &cobra.Command{
	Use:     "pins",
	Short:   "List pinned files with their current scores.",
	Args:    cobra.NoArgs,
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := engine.ExecuteWatchlistPins(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list pinned files", err)
		}
	},
}
