package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

var (
	reviewStatus string
	reviewNote   string
)

// reviewCmd records a human verdict on a scored file.
var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "Flag a scored file as acceptable or regressed.",
	Long: `Record a reviewer verdict on a file's score.

A high composite is not always actionable debt; 'acceptable' silences a known
false positive, 'regressed' marks a file that got worse after being accepted,
and 'none' clears the verdict. The verdict sticks to the stored score across
rescans.

Examples:
  # Accept a generated file that scores high by construction
  debtengine review gen/api.go --status acceptable --note "generated code"

  # Flag a file that regressed after refactoring
  debtengine review core/ledger.py --status regressed`,
	Args:    cobra.ExactArgs(1),
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := engine.ExecuteReview(rootCtx, cfg, args[0], reviewStatus, reviewNote); err != nil {
			contract.LogFatal("Cannot record review", err)
		}
	},
}
