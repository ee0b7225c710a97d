package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/fetcher"
)

// fetchCmd downloads the source datasets into the data directory.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the attendance and schedule datasets.",
	Long: `Download both source CSV datasets into the local data directory.

The attendance dataset is required; a failed download aborts the command.
The schedule dataset is optional because some mirrors do not publish it;
a missing schedule file logs a warning and the command still succeeds.

Both URLs can be overridden via flags, environment variables, or the
config file for pinned or mirrored dataset releases.

Examples:
  # Fetch both datasets to the default data directory
  turnstile fetch

  # Fetch from a pinned mirror into a custom directory
  turnstile fetch --data-dir data/2019 --attendance-url https://example.com/attendance.csv`,
	PreRunE: pipelineSetup,
	Run: func(_ *cobra.Command, _ []string) {
		f := fetcher.New(cfg.FetchRetries, cfg.FetchTimeout)
		if err := f.FetchAll(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot fetch datasets", err)
		}
	},
}
