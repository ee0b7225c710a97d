package core

import (
	"context"
	"fmt"
	"time"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/internal/render"
	"github.com/stadiumlab/turnstile/schema"
)

// LoadAndJoin runs the Loader and Joiner stages: both datasets are read from
// the configured data directory and merged into the unified game table.
func LoadAndJoin(cfg *contract.Config) ([]schema.GameRecord, error) {
	attendance, err := LoadAttendance(cfg.AttendanceCSV)
	if err != nil {
		return nil, err
	}
	sched, err := LoadSchedule(cfg.ScheduleCSV)
	if err != nil {
		return nil, err
	}
	return JoinGames(attendance, sched)
}

// Aggregates bundles the three chart-ready views for one team.
type Aggregates struct {
	Rolling []schema.RollingWindowPoint
	Heatmap []schema.WeekdayHeatmapCell
	Seasons []schema.TeamSeasonAggregate
}

// ComputeAggregates runs the three aggregate views over the joined games,
// scoped to the given team (empty means all teams).
func ComputeAggregates(games []schema.GameRecord, team string, window int) Aggregates {
	return Aggregates{
		Rolling: RollingAttendance(games, team, window),
		Heatmap: WeekdayHeatmap(games, team),
		Seasons: SeasonSellThrough(games, team),
	}
}

// ExecuteBuild runs the full pipeline: load, join, snapshot, aggregate,
// render. The team check happens before any output file is touched, so a
// failed build never clobbers a previous dashboard. Each build is an
// independent, idempotent full recomputation.
func ExecuteBuild(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	games, err := LoadAndJoin(cfg)
	if err != nil {
		return err
	}

	runID, err := mgr.GetHistoryStore().BeginRun(start, cfg.Team)
	if err != nil {
		// History tracking never blocks a build.
		contract.LogWarn("could not record build run", err)
	}

	// Overwrite the snapshot database. It is an intermediate cache only,
	// rebuilt from scratch on every invocation.
	if err := mgr.GetSnapshotStore().Replace(ctx, games); err != nil {
		return fmt.Errorf("snapshot rebuild failed: %w", err)
	}

	if err := VerifyTeam(games, cfg.Team); err != nil {
		return err
	}

	aggs := ComputeAggregates(games, cfg.Team, cfg.Window)

	if err := render.WriteDashboard(cfg.DashboardOut, cfg.Team, cfg.Window, aggs.Rolling, aggs.Heatmap, aggs.Seasons); err != nil {
		return err
	}

	if runID > 0 {
		if err := mgr.GetHistoryStore().EndRun(runID, time.Now(), len(games), cfg.DashboardOut); err != nil {
			contract.LogWarn("could not finalize build run", err)
		}
	}

	fmt.Printf("Dashboard for %s written to %s (%d joined games, %v)\n",
		cfg.Team, cfg.DashboardOut, len(games), time.Since(start).Round(time.Millisecond))
	return nil
}
