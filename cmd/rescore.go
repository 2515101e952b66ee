package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

// rescoreCmd rescores a single file incrementally.
var rescoreCmd = &cobra.Command{
	Use:   "rescore <file>",
	Short: "Rescore a single file, reusing the cached score when unchanged.",
	Long: `Score one file without rescanning the workspace.

When the file's on-disk modification time still matches the cached value,
the stored score is returned verbatim and nothing is recomputed. Otherwise
the file is rescored against freshly built workspace context and the new
score replaces the stored one.

Examples:
  # Rescore a file after editing it
  debtengine rescore internal/server/handler.go

  # Rescore and emit the result as JSON
  debtengine rescore src/billing.py --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := engine.ExecuteRescore(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot rescore file", err)
		}
	},
}
