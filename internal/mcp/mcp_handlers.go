package mcp

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stadiumlab/turnstile/core"
	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handleListTeams(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	games, err := core.LoadAndJoin(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	teams := core.Teams(games)
	jsonData, _ := json.MarshalIndent(teams, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSeasonSellThrough(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Team = request.GetString("team", "")

	games, err := h.loadForTeam(cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	seasons := core.SeasonSellThrough(games, cfg.Team)
	jsonData, _ := json.MarshalIndent(seasons, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetWeekdayHeatmap(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Team = request.GetString("team", "")

	games, err := h.loadForTeam(cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cells := core.WeekdayHeatmap(games, cfg.Team)
	jsonData, _ := json.MarshalIndent(cells, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRollingAttendance(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Team = request.GetString("team", "")
	if w := request.GetInt("window", 0); w > 0 {
		if w > contract.MaxWindow {
			return mcp.NewToolResultError(fmt.Sprintf("window must be between 1 and %d", contract.MaxWindow)), nil
		}
		cfg.Window = w
	}

	games, err := h.loadForTeam(cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	points := core.RollingAttendance(games, cfg.Team, cfg.Window)
	jsonData, _ := json.MarshalIndent(points, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

// loadForTeam loads and joins the datasets and verifies the requested team
// exists in the joined data.
func (h *toolHandler) loadForTeam(cfg *contract.Config) ([]schema.GameRecord, error) {
	if err := contract.RequireTeam(cfg); err != nil {
		return nil, err
	}
	games, err := core.LoadAndJoin(cfg)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	if err := core.VerifyTeam(games, cfg.Team); err != nil {
		return nil, err
	}
	return games, nil
}
