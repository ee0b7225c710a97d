package core

import (
	"sort"

	"github.com/stadiumlab/turnstile/schema"
)

// joinKey is the composite key both datasets share.
type joinKey struct {
	date     int64 // unix day boundary
	homeTeam string
}

// JoinGames inner-joins schedule rows to attendance rows on (date, home_team).
// Rows present in only one table are dropped; that is the documented
// data-loss policy, not an error. Zero matches returns a *schema.JoinError,
// since it signals a key-format mismatch rather than genuinely disjoint data.
//
// The result is sorted by (home team, date) so downstream aggregation is
// deterministic regardless of input ordering.
func JoinGames(attendance []schema.AttendanceRow, sched []schema.ScheduleRow) ([]schema.GameRecord, error) {
	// Index the schedule side; it is the smaller, metadata-bearing table.
	// A duplicate (date, home_team) in the schedule keeps the last row seen,
	// matching how the snapshot table would resolve the same conflict.
	byKey := make(map[joinKey]schema.ScheduleRow, len(sched))
	for _, s := range sched {
		byKey[joinKey{date: dayKey(s), homeTeam: s.HomeTeam}] = s
	}

	games := make([]schema.GameRecord, 0, min(len(attendance), len(sched)))
	for _, a := range attendance {
		s, ok := byKey[joinKey{date: a.Date.Unix(), homeTeam: a.HomeTeam}]
		if !ok {
			continue
		}
		games = append(games, schema.GameRecord{
			Date:       a.Date,
			HomeTeam:   a.HomeTeam,
			AwayTeam:   a.AwayTeam,
			Stadium:    s.Stadium,
			Attendance: a.Attendance,
			Capacity:   s.Capacity,
			Weekday:    a.Date.Weekday(),
			Season:     a.Date.Year(),
		})
	}

	if len(games) == 0 {
		return nil, &schema.JoinError{AttendanceRows: len(attendance), ScheduleRows: len(sched)}
	}

	sort.Slice(games, func(i, j int) bool {
		if games[i].HomeTeam != games[j].HomeTeam {
			return games[i].HomeTeam < games[j].HomeTeam
		}
		return games[i].Date.Before(games[j].Date)
	})
	return games, nil
}

func dayKey(s schema.ScheduleRow) int64 {
	return s.Date.Unix()
}

// Teams returns the distinct home team labels with per-team game counts and
// date coverage, sorted by label.
func Teams(games []schema.GameRecord) []schema.TeamSummary {
	byTeam := make(map[string]*schema.TeamSummary)
	for _, g := range games {
		s, ok := byTeam[g.HomeTeam]
		if !ok {
			s = &schema.TeamSummary{Team: g.HomeTeam, FirstGame: g.Date, LastGame: g.Date}
			byTeam[g.HomeTeam] = s
		}
		s.Games++
		if g.Date.Before(s.FirstGame) {
			s.FirstGame = g.Date
		}
		if g.Date.After(s.LastGame) {
			s.LastGame = g.Date
		}
	}

	out := make([]schema.TeamSummary, 0, len(byTeam))
	for _, s := range byTeam {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out
}

// VerifyTeam checks that the given team label appears in the joined data.
// The match is exact; a miss returns a *schema.UnknownTeamError listing the
// labels that do exist.
func VerifyTeam(games []schema.GameRecord, team string) error {
	known := make([]string, 0)
	seen := make(map[string]bool)
	found := false
	for _, g := range games {
		if g.HomeTeam == team {
			found = true
		}
		if !seen[g.HomeTeam] {
			seen[g.HomeTeam] = true
			known = append(known, g.HomeTeam)
		}
	}
	if found {
		return nil
	}
	sort.Strings(known)
	return &schema.UnknownTeamError{Team: team, Known: known}
}
