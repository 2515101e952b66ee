package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

// couplingsCmd lists files that keep changing together.
var couplingsCmd = &cobra.Command{
	Use:   "couplings [workspace-path]",
	Short: "List file pairs that keep changing in the same commits.",
	Long: `Report change couplings: pairs of files modified together in the same
commits within the history window.

Pairs are filtered to at least two co-changes and the configured minimum
ratio, sorted by co-change count, and flagged when a static import also links
the two files. Hidden couplings (no import between the files) often point at
duplicated knowledge.

Examples:
  # Show the strongest couplings
  debtengine couplings

  # Only pairs that co-change in at least a quarter of their commits
  debtengine couplings --min-ratio 0.25`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := engine.ExecuteCouplings(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute change couplings", err)
		}
	},
}
