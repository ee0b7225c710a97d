package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/history"
	"github.com/stadiumlab/turnstile/internal/snapshot"
	"github.com/stadiumlab/turnstile/schema"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneHistory
	var backend schema.HistoryBackend
	if backendStr == "" {
		backend = schema.NoneHistory
	} else {
		backend = schema.HistoryBackend(backendStr)
	}
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, none", backend)
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no snapshot access for history commands)
	if err := snapshot.InitStores(schema.NoneSnapshot, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	var backend schema.HistoryBackend
	if backendStr == "" {
		backend = schema.NoneHistory
	} else {
		backend = schema.HistoryBackend(backendStr)
	}
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, none", backend)
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteHistory && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on build history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by pipeline commands. This avoids dataset validation
// and complex config processing for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage dashboard build history and exports",
	Long: `Manage the build history used for tracking dashboard runs over time.

When enabled, Turnstile records every build run, storing:
- Run metadata (team, timestamps, duration)
- How many games survived the join
- Where the dashboard was written

This enables longitudinal tracking and data export for BI tools.

Supported backends: SQLite (default) or None (disabled)

Subcommands:
  status  - Show build history statistics
  export  - Export build runs to Parquet for analytics
  clear   - Remove all build history
  migrate - Run database schema migrations

Examples:
  # Check history status
  turnstile history status

  # Export for analysis in pandas/DuckDB
  turnstile history export --output-file turnstile-runs`,
}

// historyClearCmd clears the build history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded build runs",
	Long: `Delete all stored build run history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  turnstile history export --output-file backup
  turnstile history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbPath := cfg.HistoryDBConnect
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		if err := history.Clear(cfg.HistoryBackend, dbPath); err != nil {
			contract.LogFatal("Failed to clear build history", err)
		}
		fmt.Println("Build history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display build history statistics and connection details",
	Long: `Show detailed information about recorded build runs.

Displays:
- Backend type and connection status
- Total number of build runs stored
- Last and oldest build run timestamps

Examples:
  # Check build history status
  turnstile history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := snapshot.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintStatus(status)
	},
}

// historyExportCmd exports build history to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export build runs to Parquet for BI tools and analytics",
	Long: `Export all recorded build runs to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all build runs
  turnstile history export --output-file turnstile-runs

  # Use with DuckDB for analysis
  turnstile history export --output-file runs
  duckdb -c "SELECT * FROM read_parquet('runs.build_runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteExport(snapshot.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export build history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the build history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  turnstile history migrate

  # Migrate to specific version
  turnstile history migrate --target-version 1

  # Rollback to previous version
  turnstile history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
