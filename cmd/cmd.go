// Package cmd defines the command-line interface for debtengine.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(rescoreCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(breakdownCmd)
	rootCmd.AddCommand(couplingsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
	rootCmd.AddCommand(pinsCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the register subcommands to the parent register command
	registerCmd.AddCommand(registerAddCmd)
	registerCmd.AddCommand(registerListCmd)
	registerCmd.AddCommand(registerResolveCmd)
	registerCmd.AddCommand(registerRemoveCmd)

	// Add the budget subcommands to the parent budget command
	budgetCmd.AddCommand(budgetSetCmd)
	budgetCmd.AddCommand(budgetListCmd)
	budgetCmd.AddCommand(budgetRemoveCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().StringP("filter", "f", "", "Filter files by path prefix")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output directly (overrides stdout)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("history-days", 0, "Git history window in days (0 = use workspace settings)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of couplingsCmd to Viper
	couplingsCmd.Flags().Float64("min-ratio", schema.DefaultCouplingRatio, "Minimum co-change ratio for a pair to be reported")
	if err := viper.BindPFlags(couplingsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding couplings flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Float64("warning-threshold", 0, "Composite score above which a file counts as high-debt (0 = workspace settings)")
	checkCmd.Flags().Float64("critical-threshold", 0, "Composite score above which a file is critical (0 = workspace settings)")
	checkCmd.Flags().Float64Var(&checkMaxMean, "max-mean", 0, "Fail when the workspace mean composite exceeds this value (0 = disabled)")
	checkCmd.Flags().IntVar(&checkMaxHighDebt, "max-high-debt", -1, "Fail when the high-debt file count exceeds this value (-1 = disabled)")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Review command flags are plain cobra flags; they never come from config files.
	reviewCmd.Flags().StringVar(&reviewStatus, "status", "", "Supervision status: none, acceptable or regressed")
	reviewCmd.Flags().StringVar(&reviewNote, "note", "", "Optional reviewer note")
	_ = reviewCmd.MarkFlagRequired("status")

	registerAddCmd.Flags().StringVar(&registerNote, "note", "", "Free-text description of the debt item")
	registerAddCmd.Flags().StringVar(&registerFile, "file", "", "Workspace-relative file the item concerns")
	registerAddCmd.Flags().StringVar(&registerSeverity, "severity", "", "Severity: low, medium, high or critical")
	registerAddCmd.Flags().StringVar(&registerType, "type", "", "Item type: design, defect, requirement, test, performance or security")

	registerListCmd.Flags().StringVar(&registerStatusFilter, "status", "", "Filter by status: open, accepted or resolved")

	budgetSetCmd.Flags().StringVar(&budgetLabel, "label", "", "Human-readable budget name")

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
