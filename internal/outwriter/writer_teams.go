package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/schema"
)

// writeJSONResultsForTeams marshals the schema.TeamSummary slice to JSON and writes it.
func writeJSONResultsForTeams(w io.Writer, results []schema.TeamSummary) error {
	return writeJSON(w, results)
}

// teamCSVHeader returns the CSV header for team summaries.
func teamCSVHeader() []string {
	return []string{
		"team",
		"games",
		"first_game",
		"last_game",
	}
}

// writeCSVRowsForTeams writes the schema.TeamSummary data rows to a CSV writer.
func writeCSVRowsForTeams(w *csv.Writer, results []schema.TeamSummary) error {
	for _, r := range results {
		row := []string{
			r.Team,
			strconv.Itoa(r.Games),
			r.FirstGame.Format(contract.DateFormat),
			r.LastGame.Format(contract.DateFormat),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
