package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

// breakdownCmd explains one file's composite score.
var breakdownCmd = &cobra.Command{
	Use:   "breakdown <file>",
	Short: "Explain how a file's composite score was computed.",
	Long: `Print the per-signal breakdown for one scored file: raw score, weight,
contribution and the evidence behind each of the eight signals.

The composite always equals the sum of the stored contributions; it is never
recomputed at read time.

Examples:
  # Explain a suspicious file
  debtengine breakdown core/scheduler.go

  # Feed the breakdown to another tool
  debtengine breakdown core/scheduler.go --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := engine.ExecuteBreakdown(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot build breakdown", err)
		}
	},
}
