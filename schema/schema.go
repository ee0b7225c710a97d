// Package schema has configs, models and shared types for all parts of turnstile.
package schema

import "time"

// AttendanceRow is one parsed record from the attendance dataset.
// Attendance counts the bodies that came through the gates for a single game.
type AttendanceRow struct {
	Date       time.Time // Game date (day precision)
	HomeTeam   string    // Home team label, exactly as it appears in the CSV
	AwayTeam   string    // Away team label
	Attendance int       // Announced attendance, always >= 0
}

// ScheduleRow is one parsed record from the schedule dataset.
// It carries the venue metadata that the attendance dataset lacks.
type ScheduleRow struct {
	Date     time.Time // Game date (day precision)
	HomeTeam string    // Home team label
	Stadium  string    // Stadium name
	Capacity int       // Stated stadium capacity, always > 0
}

// GameRecord is a fully joined game: attendance plus schedule metadata.
// Weekday and Season are derived from Date at join time so that downstream
// aggregation never re-derives them.
type GameRecord struct {
	Date       time.Time    `json:"date"`
	HomeTeam   string       `json:"home_team"`
	AwayTeam   string       `json:"away_team"`
	Stadium    string       `json:"stadium"`
	Attendance int          `json:"attendance"`
	Capacity   int          `json:"capacity"`
	Weekday    time.Weekday `json:"weekday"`
	Season     int          `json:"season"`
}

// SellThrough returns the per-game attendance/capacity ratio, unclamped.
// Values above 1.0 are legitimate (standing-room sellouts), not errors.
func (g GameRecord) SellThrough() float64 {
	if g.Capacity <= 0 {
		return 0
	}
	return float64(g.Attendance) / float64(g.Capacity)
}

// RollingWindowPoint is one point of the trailing attendance series for a team.
// The window shrinks to the games seen so far at the start of the series, so
// the first point is simply that game's attendance.
type RollingWindowPoint struct {
	Date              time.Time `json:"date"`
	Team              string    `json:"team"`
	RollingAttendance float64   `json:"rolling_attendance"`
	RollingCapacity   float64   `json:"rolling_capacity"`
}

// WeekdayHeatmapCell is one (team, weekday) cell of the heatmap aggregate.
// Every team gets exactly seven cells; weekdays with no games carry
// GameCount 0 and AvgAttendance 0.
type WeekdayHeatmapCell struct {
	Team          string       `json:"team"`
	Weekday       time.Weekday `json:"weekday"`
	GameCount     int          `json:"game_count"`
	AvgAttendance float64      `json:"avg_attendance"`
}

// TeamSeasonAggregate is the season-level sell-through summary for a team.
type TeamSeasonAggregate struct {
	Team          string  `json:"team"`
	Season        int     `json:"season"`
	Games         int     `json:"games"`
	AvgAttendance float64 `json:"avg_attendance"`
	AvgCapacity   float64 `json:"avg_capacity"`
	// SellThrough is the mean of per-game attendance/capacity ratios,
	// stored unclamped. Display layers clamp to [0,1] but report the raw
	// value when it exceeds 1.
	SellThrough float64 `json:"sell_through"`
}

// ClampedSellThrough returns the ratio clamped to [0, 1] for chart axes.
func (a TeamSeasonAggregate) ClampedSellThrough() float64 {
	if a.SellThrough > 1 {
		return 1
	}
	if a.SellThrough < 0 {
		return 0
	}
	return a.SellThrough
}

// TeamSummary describes one team label found in the joined data.
type TeamSummary struct {
	Team      string    `json:"team"`
	Games     int       `json:"games"`
	FirstGame time.Time `json:"first_game"`
	LastGame  time.Time `json:"last_game"`
}

// SnapshotStatus holds status information about the snapshot database.
type SnapshotStatus struct {
	Backend      string    `json:"backend"`
	Connected    bool      `json:"connected"`
	TotalGames   int64     `json:"total_games"`
	TotalTeams   int64     `json:"total_teams"`
	LastBuilt    time.Time `json:"last_built,omitzero"`
	FileSizeByte int64     `json:"file_size_bytes"`
}

// HistoryStatus holds status information about the build history store.
type HistoryStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int64     `json:"total_runs"`
	LastRunID     int64     `json:"last_run_id,omitempty"`
	LastRunTime   time.Time `json:"last_run_time,omitzero"`
	OldestRunTime time.Time `json:"oldest_run_time,omitzero"`
}

// BuildRunRecord is one recorded dashboard build, as stored in history.
type BuildRunRecord struct {
	RunID         int64      `json:"run_id"`
	Team          string     `json:"team"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	RunDurationMs *int64     `json:"run_duration_ms,omitempty"`
	GamesJoined   int32      `json:"games_joined"`
	OutputPath    *string    `json:"output_path,omitempty"`
}
