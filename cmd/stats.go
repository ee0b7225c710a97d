package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/stadiumlab/turnstile/core"
	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/outwriter"
)

// statsCmd prints season sell-through stats for one team.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show season sell-through stats for a team.",
	Long: `Load and join both datasets, then print the season-over-season
sell-through summary for one team.

Sell-through is the mean of per-game attendance/capacity ratios for the
season. Values above 1.0 are reported as-is; they indicate standing-room
crowds beyond stated capacity, not data errors.

Examples:
  # Season summary as a table
  turnstile stats --team "Dallas Cowboys"

  # Export for further analysis
  turnstile stats --team "Dallas Cowboys" --output csv --output-file cowboys.csv
  turnstile stats --team "Dallas Cowboys" --output parquet --output-file cowboys.parquet`,
	PreRunE: pipelineSetup,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		if err := contract.RequireTeam(cfg); err != nil {
			contract.LogFatal("Cannot compute stats", err)
		}
		games, err := core.LoadAndJoin(cfg)
		if err != nil {
			contract.LogFatal("Cannot compute stats", err)
		}
		if err := core.VerifyTeam(games, cfg.Team); err != nil {
			contract.LogFatal("Cannot compute stats", err)
		}
		seasons := core.SeasonSellThrough(games, cfg.Team)
		ow := outwriter.NewOutWriter()
		if err := ow.WriteSeasons(seasons, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write stats", err)
		}
	},
}
