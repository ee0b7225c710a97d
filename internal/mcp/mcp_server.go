// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stadiumlab/turnstile/internal/contract"
)

// NewMCPServer initializes and configures the Turnstile MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Turnstile Attendance Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: list_teams ---
	s.AddTool(mcp.NewTool("list_teams",
		mcp.WithDescription("List all teams present in the joined attendance data, with game counts and date ranges."),
	), h.handleListTeams)

	// --- 2. Tool: get_season_sellthrough ---
	s.AddTool(mcp.NewTool("get_season_sellthrough",
		mcp.WithDescription("Compute season-over-season sell-through (attendance/capacity) aggregates for a team."),
		mcp.WithString("team", mcp.Description("Exact team label as it appears in the dataset."), mcp.Required()),
	), h.handleGetSeasonSellThrough)

	// --- 3. Tool: get_weekday_heatmap ---
	s.AddTool(mcp.NewTool("get_weekday_heatmap",
		mcp.WithDescription("Compute the weekday attendance heatmap (seven cells, zero-filled) for a team."),
		mcp.WithString("team", mcp.Description("Exact team label as it appears in the dataset."), mcp.Required()),
	), h.handleGetWeekdayHeatmap)

	// --- 4. Tool: get_rolling_attendance ---
	s.AddTool(mcp.NewTool("get_rolling_attendance",
		mcp.WithDescription("Compute the trailing rolling attendance series for a team."),
		mcp.WithString("team", mcp.Description("Exact team label as it appears in the dataset."), mcp.Required()),
		mcp.WithNumber("window", mcp.Description("Rolling window size in games. Defaults to the configured window.")),
	), h.handleGetRollingAttendance)

	return s
}

// StartMCPServer starts the Turnstile MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
