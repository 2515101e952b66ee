package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/internal/contract"
)

var budgetLabel string

// budgetCmd groups the debt budget subcommands.
var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Cap the mean debt of a path prefix.",
	Long: `Manage debt budgets: per path-prefix caps on the mean composite score.
Budgets are enforced by 'debtengine check', which exits non-zero when any
covered subtree exceeds its cap.

Examples:
  # Keep the payment core under a mean of 35
  debtengine budget set internal/payments/ 35 --label "payments core"

  # See how much headroom each budget has left
  debtengine budget list

  # Drop a budget
  debtengine budget rm 5f2d...`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// budgetSetCmd records a budget for a path prefix.
var budgetSetCmd = &cobra.Command{
	Use:     "set <path-prefix> <max-mean-score>",
	Short:   "Set a mean-score cap for a path prefix.",
	Args:    cobra.ExactArgs(2),
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		maxScore, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			contract.LogFatal("Invalid max score", err)
		}
		if err := engine.ExecuteBudgetSet(rootCtx, cfg, args[0], budgetLabel, maxScore); err != nil {
			contract.LogFatal("Cannot set budget", err)
		}
	},
}

// budgetListCmd lists budgets with their current usage.
var budgetListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List debt budgets and their current usage.",
	Args:    cobra.NoArgs,
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := engine.ExecuteBudgetList(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list budgets", err)
		}
	},
}

// budgetRemoveCmd deletes a budget.
var budgetRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Short:   "Delete a debt budget.",
	Args:    cobra.ExactArgs(1),
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := engine.ExecuteBudgetRemove(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot remove budget", err)
		}
	},
}
