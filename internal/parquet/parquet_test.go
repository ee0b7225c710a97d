package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stadiumlab/turnstile/schema"
)

func TestConvertBuildRunRecords(t *testing.T) {
	endTime := time.Now()
	durationMs := int64(1500)
	outputPath := "html/dashboard.html"

	records := []schema.BuildRunRecord{
		{
			RunID:         1,
			Team:          "Dallas Cowboys",
			StartTime:     endTime.Add(-time.Second),
			EndTime:       &endTime,
			RunDurationMs: &durationMs,
			GamesJoined:   16,
			OutputPath:    &outputPath,
		},
		{RunID: 2, Team: "Green Bay Packers", StartTime: time.Now()},
	}

	converted := ConvertBuildRunRecords(records)
	require.Len(t, converted, 2)

	assert.Equal(t, int64(1), converted[0].RunID)
	assert.Equal(t, "Dallas Cowboys", converted[0].Team)
	assert.Equal(t, int32(16), converted[0].GamesJoined)
	assert.Equal(t, &durationMs, converted[0].RunDurationMs)
	assert.Equal(t, &outputPath, converted[0].OutputPath)

	// Nullable fields stay nil for unfinished runs.
	assert.Nil(t, converted[1].EndTime)
	assert.Nil(t, converted[1].RunDurationMs)
	assert.Nil(t, converted[1].OutputPath)
}

func TestConvertTeamSummaries(t *testing.T) {
	first := time.Date(2019, 9, 8, 0, 0, 0, 0, time.UTC)
	records := []schema.TeamSummary{
		{Team: "Dallas Cowboys", Games: 8, FirstGame: first, LastGame: first.AddDate(0, 3, 0)},
	}

	converted := ConvertTeamSummaries(records)
	require.Len(t, converted, 1)
	assert.Equal(t, "Dallas Cowboys", converted[0].Team)
	assert.Equal(t, int32(8), converted[0].Games)
	assert.Equal(t, first, converted[0].FirstGame)
}

func TestConvertSeasonAggregates(t *testing.T) {
	records := []schema.TeamSeasonAggregate{
		{Team: "Green Bay Packers", Season: 2019, Games: 8, AvgAttendance: 78000, AvgCapacity: 81000, SellThrough: 1.04},
	}

	converted := ConvertSeasonAggregates(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int32(2019), converted[0].Season)
	// Unclamped ratio survives the conversion.
	assert.InDelta(t, 1.04, converted[0].SellThrough, 1e-9)
}

func TestWriteBuildRunsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")
	data := []BuildRun{
		{RunID: 1, Team: "Dallas Cowboys", StartTime: time.Now(), GamesJoined: 16},
	}

	require.NoError(t, WriteBuildRunsParquet(data, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteSeasonAggregatesParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seasons.parquet")
	data := []SeasonAggregate{
		{Team: "Dallas Cowboys", Season: 2019, Games: 8, AvgAttendance: 90000, AvgCapacity: 100000, SellThrough: 0.9},
	}

	require.NoError(t, WriteSeasonAggregatesParquet(data, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteParquet_BadPath(t *testing.T) {
	err := WriteTeamSummariesParquet([]TeamSummary{}, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}
