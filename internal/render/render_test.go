package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stadiumlab/turnstile/schema"
)

func sampleAggregates() ([]schema.RollingWindowPoint, []schema.WeekdayHeatmapCell, []schema.TeamSeasonAggregate) {
	date := time.Date(2019, 9, 8, 0, 0, 0, 0, time.UTC)
	rolling := []schema.RollingWindowPoint{
		{Date: date, Team: "Dallas Cowboys", RollingAttendance: 90000, RollingCapacity: 100000},
		{Date: date.AddDate(0, 0, 7), Team: "Dallas Cowboys", RollingAttendance: 87500, RollingCapacity: 100000},
	}
	heatmap := make([]schema.WeekdayHeatmapCell, 0, len(schema.AllWeekdays))
	for _, wd := range schema.AllWeekdays {
		heatmap = append(heatmap, schema.WeekdayHeatmapCell{Team: "Dallas Cowboys", Weekday: wd})
	}
	heatmap[6].GameCount = 2
	heatmap[6].AvgAttendance = 88750
	seasons := []schema.TeamSeasonAggregate{
		{Team: "Dallas Cowboys", Season: 2019, Games: 2, AvgAttendance: 87500, AvgCapacity: 100000, SellThrough: 0.875},
	}
	return rolling, heatmap, seasons
}

func TestWriteDashboard(t *testing.T) {
	rolling, heatmap, seasons := sampleAggregates()
	outPath := filepath.Join(t.TempDir(), "html", "dashboard.html")

	require.NoError(t, WriteDashboard(outPath, "Dallas Cowboys", 3, rolling, heatmap, seasons))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	html := string(content)

	assert.Contains(t, html, "Dallas Cowboys")
	assert.Contains(t, html, "cdn.plot.ly")
	// One container and one newPlot call per chart.
	assert.Contains(t, html, `id="rolling"`)
	assert.Contains(t, html, `id="weekday"`)
	assert.Contains(t, html, `id="sellthrough"`)
	assert.Contains(t, html, "3-Game Avg")
}

func TestWriteDashboard_OverwritesPrevious(t *testing.T) {
	rolling, heatmap, seasons := sampleAggregates()
	outPath := filepath.Join(t.TempDir(), "dashboard.html")

	require.NoError(t, os.WriteFile(outPath, []byte("old content"), 0o600))
	require.NoError(t, WriteDashboard(outPath, "Dallas Cowboys", 3, rolling, heatmap, seasons))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "old content")
}

func TestWriteDashboard_TeamNameEscaped(t *testing.T) {
	rolling, heatmap, seasons := sampleAggregates()
	outPath := filepath.Join(t.TempDir(), "dashboard.html")

	require.NoError(t, WriteDashboard(outPath, "<script>alert(1)</script>", 3, rolling, heatmap, seasons))

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "<script>alert(1)</script>")
}

func TestWriteDashboard_BadPath(t *testing.T) {
	rolling, heatmap, seasons := sampleAggregates()

	// A directory path cannot be created as a file.
	err := WriteDashboard(t.TempDir(), "Dallas Cowboys", 3, rolling, heatmap, seasons)
	require.Error(t, err)

	var renderErr *schema.RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestRollingChart_TwoTraces(t *testing.T) {
	rolling, _, _ := sampleAggregates()
	spec := rollingChart(rolling, 3)
	require.Len(t, spec.Data, 2)
	assert.Len(t, spec.Data[0].X, 2)
	assert.Len(t, spec.Data[0].Y, 2)
}

func TestHeatmapChart_SevenColumns(t *testing.T) {
	_, heatmap, _ := sampleAggregates()
	spec := heatmapChart(heatmap)
	require.Len(t, spec.Data, 1)
	assert.Len(t, spec.Data[0].X, 7)
}
