package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/parquet"
	"github.com/stadiumlab/turnstile/schema"
)

// PrintTeamResults outputs the team summaries, dispatching based on the output format configured.
func PrintTeamResults(results []schema.TeamSummary, cfg *contract.Config) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForTeams(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForTeams(results, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForTeams(results, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printTeamTable(results, cfg); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForTeams handles opening the file and calling the JSON writer.
func printJSONResultsForTeams(results []schema.TeamSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForTeams(w, results)
	}, "Wrote JSON")
}

// printCSVResultsForTeams handles opening the file and calling the CSV writer.
func printCSVResultsForTeams(results []schema.TeamSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, teamCSVHeader(), func(csvWriter *csv.Writer) error {
			return writeCSVRowsForTeams(csvWriter, results)
		})
	}, "Wrote CSV")
}

// printParquetResultsForTeams writes the team summaries to a Parquet file.
// Parquet is a binary format, so an output file is mandatory.
func printParquetResultsForTeams(results []schema.TeamSummary, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	if err := parquet.WriteTeamSummariesParquet(parquet.ConvertTeamSummaries(results), cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// printTeamTable prints the team summaries in table format using the tablewriter API.
func printTeamTable(results []schema.TeamSummary, cfg *contract.Config) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	table.Header([]string{"Team", "Games", "First Game", "Last Game"})

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	maxLabel := GetMaxTableLabelWidth(cfg)
	var data [][]string
	totalGames := 0
	for _, r := range results {
		data = append(data, []string{
			contract.TruncateLabel(r.Team, maxLabel),
			fmt.Sprintf("%d", r.Games),
			r.FirstGame.Format(contract.DateFormat),
			r.LastGame.Format(contract.DateFormat),
		})
		totalGames += r.Games
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("Showing %d teams (total games: %d)\n", len(results), totalGames)
	return nil
}
