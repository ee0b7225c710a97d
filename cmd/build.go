package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stadiumlab/turnstile/core"
	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/snapshot"
)

// buildCmd runs the full dashboard pipeline for one team.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the attendance dashboard for a team.",
	Long: `Run the full pipeline: load both datasets, join them on (date, home team),
rebuild the snapshot database, compute the three aggregate views, and render
the dashboard HTML.

The three charts are:
- Rolling attendance vs capacity over the configured window
- Weekday effect heatmap (all seven weekdays, zero-filled)
- Season-over-season sell-through

Every build is an independent full recomputation. The snapshot database and
the dashboard file are both overwritten; the previous dashboard is only
replaced once the new one renders successfully.

Examples:
  # Build the dashboard for one team
  turnstile build --team "Dallas Cowboys"

  # Wider rolling window and custom output location
  turnstile build --team "Dallas Cowboys" --window 5 --out html/cowboys.html

  # Build without persisting a snapshot
  turnstile build --team "Dallas Cowboys" --snapshot-backend none`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := contract.RequireTeam(cfg); err != nil {
			contract.LogFatal("Cannot build dashboard", err)
		}
		if err := core.ExecuteBuild(rootCtx, cfg, snapshot.Manager); err != nil {
			contract.LogFatal("Cannot build dashboard", err)
		}
	},
}
