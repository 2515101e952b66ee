package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/internal/outwriter"
	"github.com/debtengine/debtengine/internal/store"
	"github.com/debtengine/debtengine/schema"
)

// migrateSetup loads minimal configuration for migrations. It deliberately
// does NOT initialize stores or create tables, so migrations can run against
// a fresh database.
func migrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	root, err := filepath.Abs(".")
	if err != nil {
		return err
	}
	cfg.WorkspaceRoot = root
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// storeCmd groups durable-store management subcommands.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the durable score store.",
	Long: `Manage the durable store holding file scores, snapshots, the debt
register, budgets, couplings and the watchlist.

Supported backends: SQLite (default, per-workspace file), MySQL, PostgreSQL,
or None (disable persistence).

Subcommands:
  status  - Show connection health and per-table row counts
  clear   - Wipe every table
  migrate - Run schema migrations
  export  - Export scores and snapshots to Parquet files

Examples:
  # Check the workspace store
  debtengine store status

  # Move to a shared PostgreSQL store
  DEBTENGINE_STORE_BACKEND=postgresql DEBTENGINE_STORE_DB_CONNECT="host=... dbname=..." debtengine store migrate`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// storeStatusCmd shows store health and row counts.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display store connection health and table sizes.",
	Args:    cobra.NoArgs,
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := store.Manager.GetScoreStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		if err := outwriter.PrintStoreStatusResults(status, cfg, 0); err != nil {
			contract.LogFatal("Failed to print store status", err)
		}
	},
}

// storeClearCmd wipes every table.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored scores and workspace records.",
	Long: `Delete every row from every store table. The schema itself is kept.

Use this when:
- Repository history was rewritten (rebase, force push)
- Scores may be stale after large refactors
- Starting a fresh baseline`,
	Args:    cobra.NoArgs,
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.Manager.GetScoreStore().Clear(); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run store schema migrations.",
	Long: `Run schema migrations against the configured store backend.

By default this migrates to the latest version. Use --target-version to pin
a version, or 0 to roll everything back.

Examples:
  # Migrate the workspace SQLite store to the latest schema
  debtengine store migrate

  # Roll back everything
  debtengine store migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: migrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		connStr := store.ResolveConnStr(cfg)
		if cfg.StoreBackend == schema.SQLiteBackend {
			// The workspace data directory must exist before SQLite can
			// create the database file inside it.
			if err := os.MkdirAll(contract.WorkspaceDir(cfg.WorkspaceRoot), 0o755); err != nil {
				contract.LogFatal("Failed to create workspace data directory", err)
			}
		}
		if err := store.Migrate(cfg.StoreBackend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to run store migrations", err)
		}
		fmt.Println("Store migrations completed successfully.")
	},
}

// storeExportCmd exports store contents to Parquet.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scores and snapshots to Parquet files.",
	Long: `Export the stored file scores and debt snapshots to a pair of Parquet
files for downstream analytics (Spark, Pandas, DuckDB and friends).

Examples:
  # Export to debt.file_scores.parquet and debt.snapshots.parquet
  debtengine store export --output-file debt`,
	Args:    cobra.NoArgs,
	PreRunE: fileArgSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ExecuteStoreExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store", err)
		}
	},
}
