package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/schema"
)

// writeJSONResultsForSeasons marshals the schema.TeamSeasonAggregate slice to JSON and writes it.
func writeJSONResultsForSeasons(w io.Writer, results []schema.TeamSeasonAggregate) error {
	// 1. Prepare the data structure for JSON with the label added
	type JSONSeasonResult struct {
		Label string `json:"label"`
		schema.TeamSeasonAggregate
	}

	output := make([]JSONSeasonResult, len(results))
	for i, r := range results {
		output[i] = JSONSeasonResult{
			Label:               contract.GetPlainLabel(r.SellThrough),
			TeamSeasonAggregate: r,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeCSVResultsForSeasons writes the schema.TeamSeasonAggregate data to a CSV writer.
func writeCSVResultsForSeasons(w *csv.Writer, results []schema.TeamSeasonAggregate, fmtFloat func(float64) string, intFmt string) error {
	// 1. Write Header Row
	header := []string{
		"team",
		"season",
		"games",
		"avg_attendance",
		"avg_capacity",
		"sell_through",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, r := range results {
		row := []string{
			r.Team,
			strconv.Itoa(r.Season),
			fmt.Sprintf(intFmt, r.Games),
			fmtFloat(r.AvgAttendance),
			fmtFloat(r.AvgCapacity),
			fmtFloat(r.SellThrough),
			contract.GetPlainLabel(r.SellThrough),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
