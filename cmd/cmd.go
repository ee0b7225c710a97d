// Package cmd defines the command-line interface for turnstile.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the snapshot subcommands to the parent snapshot command
	snapshotCmd.AddCommand(snapshotStatusCmd)
	snapshotCmd.AddCommand(snapshotClearCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("data-dir", contract.DefaultDataDir, "Directory holding the downloaded CSV datasets")
	rootCmd.PersistentFlags().String("attendance-url", contract.DefaultAttendanceURL, "Source URL for the attendance dataset")
	rootCmd.PersistentFlags().String("schedule-url", contract.DefaultScheduleURL, "Source URL for the schedule dataset")
	rootCmd.PersistentFlags().StringP("team", "t", "", "Exact team label to scope dashboards and stats to")
	rootCmd.PersistentFlags().IntP("window", "w", contract.DefaultWindow, "Rolling attendance window in games")
	rootCmd.PersistentFlags().String("db", contract.DefaultSnapshotPath, "Path to the snapshot database file")
	rootCmd.PersistentFlags().String("snapshot-backend", string(schema.DuckDBSnapshot), "Snapshot backend: duckdb or sqlite or none")
	rootCmd.PersistentFlags().String("out", contract.DefaultDashboardOut, "Path to write the dashboard HTML to")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteHistory), "Build history backend: sqlite or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "SQLite file path for build history (must differ from --db)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("fetch-retries", contract.DefaultFetchRetries, "Number of download attempts per dataset")
	rootCmd.PersistentFlags().String("fetch-timeout", contract.DefaultFetchTimeout.String(), "Per-attempt download timeout (e.g. 30s, 2m)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
