package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/snapshot"
	"github.com/stadiumlab/turnstile/schema"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need snapshot access without full shared setup.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backend := schema.SnapshotBackend(viper.GetString("snapshot-backend"))
	path := viper.GetString("db")
	if path == "" {
		path = contract.DefaultSnapshotPath
	}
	if _, ok := schema.ValidSnapshotBackends[backend]; !ok {
		return fmt.Errorf("invalid snapshot backend '%s'. must be duckdb, sqlite, none", backend)
	}

	// Initialize stores with the loaded config (no history tracking for snapshot commands)
	if err := snapshot.InitStores(backend, path, schema.NoneHistory, ""); err != nil {
		return fmt.Errorf("failed to initialize snapshot: %w", err)
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotPath = path

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotCmd focused on snapshot management.
//
// Note: Snapshot subcommands use minimal initialization (snapshotSetup) instead
// of the full sharedSetup used by pipeline commands. This avoids dataset
// validation and complex config processing for simple snapshot operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the local snapshot database",
	Long: `Manage the snapshot database that holds the joined game table.

The snapshot is an intermediate cache written on every build. It lets you
query the joined data with DuckDB or SQLite tooling without re-running the
join, but it is fully overwritten on each build and is not a stable API.

Supported backends: DuckDB (default), SQLite, or None (disabled)

Subcommands:
  status - Show snapshot statistics and connection info
  clear  - Remove the snapshot database file

Examples:
  # Check snapshot status
  turnstile snapshot status

  # Remove the snapshot after changing backends
  turnstile snapshot clear`,
}

// snapshotClearCmd clears the snapshot database.
var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the snapshot database file",
	Long: `Delete the snapshot database file from disk.

The next build recreates the snapshot from scratch, so clearing is always
safe. Use this when switching backends or reclaiming disk space.

Examples:
  # Clear the default DuckDB snapshot
  turnstile snapshot clear

  # Clear a SQLite snapshot at a custom path
  turnstile snapshot clear --snapshot-backend sqlite --db data/games.db`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapshot.Clear(cfg.SnapshotBackend, cfg.SnapshotPath); err != nil {
			contract.LogFatal("Failed to clear snapshot", err)
		}
		fmt.Println("Snapshot cleared successfully.")
	},
}

// snapshotStatusCmd shows snapshot status.
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot statistics and connection details",
	Long: `Show detailed information about the snapshot database.

Displays:
- Backend type and connection status
- Total games and teams stored
- When the snapshot was last built
- Database file size

Examples:
  # Check snapshot status
  turnstile snapshot status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := snapshot.Manager.GetSnapshotStore().GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		snapshot.PrintStatus(status)
	},
}
