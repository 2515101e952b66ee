package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

// scanCmd runs a full workspace scan.
var scanCmd = &cobra.Command{
	Use:   "scan [workspace-path]",
	Short: "Score every source file in the workspace.",
	Long: `Walk the workspace, run all eight debt signals against every source file
and print the ranked composite scores.

The eight signals are:
- Churn rate: how often the file changes
- Code-smell density: heuristic smells per line of code
- Structural coupling: import graph in/out degree
- Change coupling: files that keep changing together
- Test-coverage gap: coverage data or co-located test files
- Knowledge concentration: single-author risk from blame
- Cyclomatic complexity: branching density per function
- Decision staleness: age of the matching architecture decision record

Every score is persisted to the durable store in one transaction, so later
'rescore', 'heatmap' and 'breakdown' calls start from this baseline.

Examples:
  # Scan the current directory
  debtengine scan

  # Scan another workspace with a shorter history window
  debtengine scan ~/src/payments --history-days 30

  # Export the full ranking to CSV
  debtengine scan --output csv --output-file debt.csv

  # Only score one subtree
  debtengine scan --filter internal/`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := engine.ExecuteScan(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run workspace scan", err)
		}
	},
}
