package cmd

import (
	"github.com/spf13/cobra"

	"github.com/debtengine/debtengine/core"
	"github.com/debtengine/debtengine/internal/contract"
)

var (
	registerNote         string
	registerFile         string
	registerSeverity     string
	registerType         string
	registerStatusFilter string
)

// registerCmd groups the debt register subcommands.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Track debt items the scanner cannot see.",
	Long: `Maintain a manual debt register alongside the computed scores: design
shortcuts, known defects, missing tests and similar items that no text
heuristic can detect.

Examples:
  # Record a known shortcut
  debtengine register add "Retry logic duplicated in three handlers" --severity high --type design

  # List what is still open
  debtengine register list --status open

  # Close an item once it is paid down
  debtengine register resolve 5f2d...`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// registerAddCmd records a new debt item.
var registerAddCmd = &cobra.Command{
	Use:     "add <title>",
	Short:   "Record a new debt item.",
	Args:    cobra.ExactArgs(1),
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		opts := core.RegisterAddOptions{
			Title:    args[0],
			Note:     registerNote,
			FilePath: registerFile,
			Severity: registerSeverity,
			Type:     registerType,
		}
		if err := engine.ExecuteRegisterAdd(rootCtx, cfg, opts); err != nil {
			contract.LogFatal("Cannot add register item", err)
		}
	},
}

// registerListCmd lists register items.
var registerListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List debt register items.",
	Args:    cobra.NoArgs,
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := engine.ExecuteRegisterList(rootCtx, cfg, registerStatusFilter); err != nil {
			contract.LogFatal("Cannot list register items", err)
		}
	},
}

// registerResolveCmd marks an item resolved.
var registerResolveCmd = &cobra.Command{
	Use:     "resolve <id>",
	Short:   "Mark a debt item as resolved.",
	Args:    cobra.ExactArgs(1),
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := engine.ExecuteRegisterResolve(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot resolve register item", err)
		}
	},
}

// registerRemoveCmd deletes an item outright.
var registerRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Short:   "Delete a debt item from the register.",
	Args:    cobra.ExactArgs(1),
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := engine.ExecuteRegisterRemove(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot remove register item", err)
		}
	},
}
