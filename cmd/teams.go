package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stadiumlab/turnstile/core"
	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/outwriter"
)

// teamsCmd lists the teams present in the joined data.
var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams present in the joined datasets.",
	Long: `Load and join both datasets, then list every home team label found,
with game counts and first/last game dates.

Use this to discover the exact labels accepted by --team. The match in
build and stats is exact, so copy labels verbatim from this output.

Examples:
  # List all teams as a table
  turnstile teams

  # Export the team list for scripting
  turnstile teams --output json --output-file teams.json`,
	PreRunE: pipelineSetup,
	Run: func(_ *cobra.Command, _ []string) {
		games, err := core.LoadAndJoin(cfg)
		if err != nil {
			contract.LogFatal("Cannot list teams", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteTeams(core.Teams(games), cfg); err != nil {
			contract.LogFatal("Cannot write team list", err)
		}
	},
}
