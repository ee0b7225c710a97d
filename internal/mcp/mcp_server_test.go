package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stadiumlab/turnstile/internal/contract"
	mcp_internal "github.com/stadiumlab/turnstile/internal/mcp"
)

// newDatasetConfig writes a matching dataset pair and returns a config
// pointing at it.
func newDatasetConfig(t *testing.T) *contract.Config {
	t.Helper()
	dataDir := t.TempDir()

	attendanceCSV := filepath.Join(dataDir, "attendance.csv")
	require.NoError(t, os.WriteFile(attendanceCSV, []byte(`date,home_team,away_team,attendance
2019-09-08,Dallas Cowboys,New York Giants,90000
2019-09-15,Dallas Cowboys,Washington,85000
`), 0o600))

	scheduleCSV := filepath.Join(dataDir, "schedule.csv")
	require.NoError(t, os.WriteFile(scheduleCSV, []byte(`date,home_team,stadium,capacity
2019-09-08,Dallas Cowboys,AT&T Stadium,100000
2019-09-15,Dallas Cowboys,AT&T Stadium,100000
`), 0o600))

	return &contract.Config{
		DataDir:       dataDir,
		AttendanceCSV: attendanceCSV,
		ScheduleCSV:   scheduleCSV,
		Window:        3,
	}
}

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestMCPServerHandlers(t *testing.T) {
	baseCfg := newDatasetConfig(t)
	s := mcp_internal.NewMCPServer(baseCfg)
	ctx := context.Background()

	t.Run("list_teams returns joined teams", func(t *testing.T) {
		tool := s.GetTool("list_teams")
		require.NotNil(t, tool, "Tool list_teams should exist")

		res, err := tool.Handler(ctx, callTool("list_teams", nil))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "Dallas Cowboys")
	})

	t.Run("get_season_sellthrough computes aggregates", func(t *testing.T) {
		tool := s.GetTool("get_season_sellthrough")
		require.NotNil(t, tool)

		res, err := tool.Handler(ctx, callTool("get_season_sellthrough", map[string]any{
			"team": "Dallas Cowboys",
		}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"season": 2019`)
		assert.Contains(t, text, "sell_through")
	})

	t.Run("get_season_sellthrough missing team", func(t *testing.T) {
		tool := s.GetTool("get_season_sellthrough")
		require.NotNil(t, tool)

		res, err := tool.Handler(ctx, callTool("get_season_sellthrough", map[string]any{
			"team": "",
		}))
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "--team is required")
	})

	t.Run("get_weekday_heatmap unknown team", func(t *testing.T) {
		tool := s.GetTool("get_weekday_heatmap")
		require.NotNil(t, tool)

		res, err := tool.Handler(ctx, callTool("get_weekday_heatmap", map[string]any{
			"team": "No Such Team",
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "not present in dataset")
	})

	t.Run("get_rolling_attendance with window override", func(t *testing.T) {
		tool := s.GetTool("get_rolling_attendance")
		require.NotNil(t, tool)

		res, err := tool.Handler(ctx, callTool("get_rolling_attendance", map[string]any{
			"team":   "Dallas Cowboys",
			"window": 2.0,
		}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "rolling_attendance")
	})

	t.Run("get_rolling_attendance window too large", func(t *testing.T) {
		tool := s.GetTool("get_rolling_attendance")
		require.NotNil(t, tool)

		res, err := tool.Handler(ctx, callTool("get_rolling_attendance", map[string]any{
			"team":   "Dallas Cowboys",
			"window": 100.0,
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "window must be between")
	})
}
