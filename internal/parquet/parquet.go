// Package parquet provides data structures and functions for exporting
// turnstile data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/stadiumlab/turnstile/schema"
)

// BuildRun represents a single dashboard build run with metadata.
// This struct maps to the turnstile_build_runs database table.
type BuildRun struct {
	// RunID is the unique identifier for this build run
	RunID int64 `parquet:"run_id,snappy"`

	// Team is the team filter the dashboard was built for
	Team string `parquet:"team,snappy"`

	// StartTime is when the build began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the build completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the build run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// GamesJoined is the number of games that survived the join
	GamesJoined int32 `parquet:"games_joined,snappy"`

	// OutputPath is where the dashboard was written (nullable)
	OutputPath *string `parquet:"output_path,optional,snappy"`
}

// TeamSummary represents one team label found in the joined game table.
type TeamSummary struct {
	Team      string    `parquet:"team,snappy"`
	Games     int32     `parquet:"games,snappy"`
	FirstGame time.Time `parquet:"first_game,snappy"`
	LastGame  time.Time `parquet:"last_game,snappy"`
}

// SeasonAggregate represents the season-level sell-through summary for a team.
type SeasonAggregate struct {
	Team          string  `parquet:"team,snappy"`
	Season        int32   `parquet:"season,snappy"`
	Games         int32   `parquet:"games,snappy"`
	AvgAttendance float64 `parquet:"avg_attendance,snappy"`
	AvgCapacity   float64 `parquet:"avg_capacity,snappy"`
	SellThrough   float64 `parquet:"sell_through,snappy"`
}

// WriteBuildRunsParquet writes a slice of BuildRun structs to a Parquet file.
func WriteBuildRunsParquet(data []BuildRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTeamSummariesParquet writes a slice of TeamSummary structs to a Parquet file.
func WriteTeamSummariesParquet(data []TeamSummary, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSeasonAggregatesParquet writes a slice of SeasonAggregate structs to a Parquet file.
func WriteSeasonAggregatesParquet(data []SeasonAggregate, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records to a Parquet file using struct schema inference.
// The schema is automatically derived from the struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertBuildRunRecords converts schema.BuildRunRecord to BuildRun for Parquet export.
func ConvertBuildRunRecords(records []schema.BuildRunRecord) []BuildRun {
	result := make([]BuildRun, len(records))
	for i, record := range records {
		result[i] = BuildRun{
			RunID:         record.RunID,
			Team:          record.Team,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			GamesJoined:   record.GamesJoined,
			OutputPath:    record.OutputPath,
		}
	}
	return result
}

// ConvertTeamSummaries converts schema.TeamSummary to TeamSummary for Parquet export.
func ConvertTeamSummaries(records []schema.TeamSummary) []TeamSummary {
	result := make([]TeamSummary, len(records))
	for i, record := range records {
		result[i] = TeamSummary{
			Team:      record.Team,
			Games:     int32(record.Games),
			FirstGame: record.FirstGame,
			LastGame:  record.LastGame,
		}
	}
	return result
}

// ConvertSeasonAggregates converts schema.TeamSeasonAggregate to SeasonAggregate for Parquet export.
func ConvertSeasonAggregates(records []schema.TeamSeasonAggregate) []SeasonAggregate {
	result := make([]SeasonAggregate, len(records))
	for i, record := range records {
		result[i] = SeasonAggregate{
			Team:          record.Team,
			Season:        int32(record.Season),
			Games:         int32(record.Games),
			AvgAttendance: record.AvgAttendance,
			AvgCapacity:   record.AvgCapacity,
			SellThrough:   record.SellThrough,
		}
	}
	return result
}
