package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/parquet"
	"github.com/stadiumlab/turnstile/schema"
)

// PrintSeasonResults outputs the season aggregates, dispatching based on the output format configured.
func PrintSeasonResults(results []schema.TeamSeasonAggregate, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSeasons(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSeasons(results, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForSeasons(results, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printSeasonTable(results, cfg, fmtFloat, intFmt, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForSeasons handles opening the file and calling the JSON writer.
func printJSONResultsForSeasons(results []schema.TeamSeasonAggregate, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSeasons(w, results)
	}, "Wrote JSON")
}

// printCSVResultsForSeasons handles opening the file and calling the CSV writer.
func printCSVResultsForSeasons(results []schema.TeamSeasonAggregate, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSeasons(csvWriter, results, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// printParquetResultsForSeasons writes the season aggregates to a Parquet file.
// Parquet is a binary format, so an output file is mandatory.
func printParquetResultsForSeasons(results []schema.TeamSeasonAggregate, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	if err := parquet.WriteSeasonAggregatesParquet(parquet.ConvertSeasonAggregates(results), cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// printSeasonTable prints the season aggregates in table format using the tablewriter API.
func printSeasonTable(results []schema.TeamSeasonAggregate, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// 1. Define Headers
	table.Header([]string{"Season", "Games", "Avg Attendance", "Avg Capacity", "Sell-through", "Label"})

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	var data [][]string
	for _, r := range results {
		label := contract.GetPlainLabel(r.SellThrough)
		if cfg.UseColors {
			label = contract.GetColorLabel(r.SellThrough)
		}
		data = append(data, []string{
			strconv.Itoa(r.Season),
			fmt.Sprintf(intFmt, r.Games),
			fmtFloat(r.AvgAttendance),
			fmtFloat(r.AvgCapacity),
			fmtFloat(r.SellThrough),
			label,
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Printf("Showing %d seasons for %s\n", len(results), cfg.Team)
	fmt.Printf("Stats completed in %v. Snapshot backend: %s\n", duration, cfg.SnapshotBackend)
	return nil
}
