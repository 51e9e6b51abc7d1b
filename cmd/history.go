package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/internal/history"
	"github.com/huangsam/trustscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendFromViper reads the backend settings without the full setup,
// so history commands work without URLs or a valid plan.
func historyBackendFromViper() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration and opens the history store.
func historySetup() error {
	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}
	if err := history.InitHistory(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads the backend settings without opening the store,
// allowing migrations to run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = history.GetDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd groups run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the history of scoring runs",
	Long: `Manage the stored history of scoring runs.

When a history backend is set, every scoring run stores:
- Run metadata (start and end time, configuration, URL count)
- One evaluation per URL with its net score, label and per-metric scores

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show history statistics
  export  - Export runs and evaluations to Parquet
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Score with SQLite history, then check it
  trustscore --history-backend sqlite https://huggingface.co/google/gemma-2b
  trustscore history status --history-backend sqlite`,
}

// historyStatusCmd shows history statistics.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show the backend, the number of stored runs, the first and last run
timestamps, the number of distinct URLs and the size of each table.

Examples:
  trustscore history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := history.Manager.GetHistoryStore()
		if store == nil {
			fmt.Println("Run history is disabled. Set --history-backend to enable it.")
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for analytics tools",
	Long: `Export every stored run and evaluation to Parquet.

Writes two files next to --output-file:
- <output-file>.runs.parquet
- <output-file>.evaluations.parquet

Examples:
  trustscore history export --history-backend sqlite --output-file trust
  duckdb -c "SELECT url, net_score FROM read_parquet('trust.evaluations.parquet')"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(history.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyClearCmd removes all history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored run history",
	Long: `Delete all stored runs and evaluations.

For SQLite the database file is removed. For MySQL and PostgreSQL the
history tables are dropped.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  trustscore history export --history-backend sqlite --output-file backup
  trustscore history clear --history-backend sqlite`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  trustscore history migrate --history-backend postgresql --history-db-connect "$DSN"

  # Rollback to initial state
  trustscore history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
