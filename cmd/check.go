package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/core"
	"github.com/debtengine/debtengine/internal/contract"
)

var (
	checkMaxMean     float64
	checkMaxHighDebt int
)

// checkCmd gates CI/CD pipelines on debt limits.
var checkCmd = &cobra.Command{
	Use:   "check [workspace-path]",
	Short: "Fail when stored scores breach configured debt limits.",
	Long: `Evaluate the stored scores against debt gates and exit non-zero on any
violation. Intended for CI/CD pipelines.

Three kinds of gates are checked:
- --max-mean: the workspace mean composite score
- --max-high-debt: the number of files above the high-debt threshold
- every debt budget recorded with 'debtengine budget set'

Examples:
  # Fail the build when mean debt exceeds 40
  debtengine check --max-mean 40

  # Allow at most five high-debt files
  debtengine check --max-high-debt 5

  # Budgets alone, as part of a nightly job
  debtengine check --output json --output-file gate.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		opts := core.CheckOptions{MaxMean: checkMaxMean, MaxHighDebt: checkMaxHighDebt}
		if err := engine.ExecuteCheck(rootCtx, cfg, opts); err != nil {
			contract.LogFatal("Debt check failed", err)
		}
	},
}
