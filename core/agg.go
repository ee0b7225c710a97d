package core

import (
	"sort"

	"github.com/stadiumlab/turnstile/schema"
)

// The three aggregate views are pure functions of the joined game records.
// Each takes an optional team filter; an empty team means all teams. Given
// identical input they produce bit-identical output, which the build relies
// on for idempotent recomputation.

// RollingAttendance computes the trailing attendance and capacity means per
// team, sorted by date ascending. The window shrinks to min(window,
// games-so-far) at the start of a team's series, so early points are means
// over fewer games rather than undefined.
func RollingAttendance(games []schema.GameRecord, team string, window int) []schema.RollingWindowPoint {
	if window < 1 {
		window = 1
	}

	byTeam := groupByTeam(games, team)
	teams := sortedKeys(byTeam)

	var points []schema.RollingWindowPoint
	for _, t := range teams {
		series := byTeam[t]
		sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

		for i := range series {
			lo := i - window + 1
			if lo < 0 {
				lo = 0
			}
			var attSum, capSum float64
			for _, g := range series[lo : i+1] {
				attSum += float64(g.Attendance)
				capSum += float64(g.Capacity)
			}
			n := float64(i + 1 - lo)
			points = append(points, schema.RollingWindowPoint{
				Date:              series[i].Date,
				Team:              t,
				RollingAttendance: attSum / n,
				RollingCapacity:   capSum / n,
			})
		}
	}
	return points
}

// WeekdayHeatmap computes per-(team, weekday) game counts and mean
// attendance. Every team emits exactly seven cells, Monday through Sunday;
// weekdays with no games are zero-filled.
func WeekdayHeatmap(games []schema.GameRecord, team string) []schema.WeekdayHeatmapCell {
	byTeam := groupByTeam(games, team)
	teams := sortedKeys(byTeam)

	var cells []schema.WeekdayHeatmapCell
	for _, t := range teams {
		counts := make(map[int]int)
		sums := make(map[int]float64)
		for _, g := range byTeam[t] {
			wd := int(g.Weekday)
			counts[wd]++
			sums[wd] += float64(g.Attendance)
		}
		for _, wd := range schema.AllWeekdays {
			cell := schema.WeekdayHeatmapCell{Team: t, Weekday: wd}
			if n := counts[int(wd)]; n > 0 {
				cell.GameCount = n
				cell.AvgAttendance = sums[int(wd)] / float64(n)
			}
			cells = append(cells, cell)
		}
	}
	return cells
}

// SeasonSellThrough computes per-(team, season) attendance and sell-through
// summaries. The ratio is the mean of per-game attendance/capacity and is
// stored unclamped: a value above 1 means standing-room sellouts, which is
// reported as-is rather than treated as an error.
func SeasonSellThrough(games []schema.GameRecord, team string) []schema.TeamSeasonAggregate {
	type key struct {
		team   string
		season int
	}
	type acc struct {
		games    int
		attSum   float64
		capSum   float64
		ratioSum float64
	}

	accs := make(map[key]*acc)
	for _, g := range games {
		if team != "" && g.HomeTeam != team {
			continue
		}
		k := key{team: g.HomeTeam, season: g.Season}
		a, ok := accs[k]
		if !ok {
			a = &acc{}
			accs[k] = a
		}
		a.games++
		a.attSum += float64(g.Attendance)
		a.capSum += float64(g.Capacity)
		a.ratioSum += g.SellThrough()
	}

	out := make([]schema.TeamSeasonAggregate, 0, len(accs))
	for k, a := range accs {
		n := float64(a.games)
		out = append(out, schema.TeamSeasonAggregate{
			Team:          k.team,
			Season:        k.season,
			Games:         a.games,
			AvgAttendance: a.attSum / n,
			AvgCapacity:   a.capSum / n,
			SellThrough:   a.ratioSum / n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].Season < out[j].Season
	})
	return out
}

// groupByTeam buckets games by home team, honoring an optional team filter.
func groupByTeam(games []schema.GameRecord, team string) map[string][]schema.GameRecord {
	byTeam := make(map[string][]schema.GameRecord)
	for _, g := range games {
		if team != "" && g.HomeTeam != team {
			continue
		}
		byTeam[g.HomeTeam] = append(byTeam[g.HomeTeam], g)
	}
	return byTeam
}

func sortedKeys(m map[string][]schema.GameRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
