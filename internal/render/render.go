// Package render turns the aggregate views into a self-contained HTML
// dashboard with three embedded Plotly charts. The document pulls Plotly
// from a CDN and needs no server to display.
package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/stadiumlab/turnstile/schema"
)

// dashboardTemplate is the full static document. Chart specs are injected as
// pre-marshaled JSON; everything else goes through normal HTML escaping.
var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Team}} Attendance Dashboard</title>
<script src="https://cdn.plot.ly/plotly-latest.min.js"></script>
<style>body{font-family:Arial;margin:0} .plot{width:90%;margin:40px auto}</style>
</head>
<body>
<h1 style="text-align:center">{{.Team}} &ndash; Attendance Dashboard</h1>
<div class="plot" id="rolling"></div>
<div class="plot" id="weekday"></div>
<div class="plot" id="sellthrough"></div>
<script>
Plotly.newPlot('rolling', {{.Rolling}});
Plotly.newPlot('weekday', {{.Weekday}});
Plotly.newPlot('sellthrough', {{.SellThrough}});
</script>
</body>
</html>
`))

// dashboardData is the template context for one rendered dashboard.
type dashboardData struct {
	Team        string
	Rolling     template.JS
	Weekday     template.JS
	SellThrough template.JS
}

// WriteDashboard renders the three charts for the given team and writes the
// document to outPath, overwriting any prior content. The parent directory
// is created if needed. Failures surface as *schema.RenderError.
func WriteDashboard(outPath, team string, window int,
	rolling []schema.RollingWindowPoint,
	heatmap []schema.WeekdayHeatmapCell,
	seasons []schema.TeamSeasonAggregate,
) error {
	data, err := buildDashboardData(team, window, rolling, heatmap, seasons)
	if err != nil {
		return &schema.RenderError{Path: outPath, Err: err}
	}

	if dir := filepath.Dir(outPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return &schema.RenderError{Path: outPath, Err: err}
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return &schema.RenderError{Path: outPath, Err: err}
	}
	defer func() { _ = f.Close() }()

	if err := dashboardTemplate.Execute(f, data); err != nil {
		return &schema.RenderError{Path: outPath, Err: err}
	}
	return nil
}

// buildDashboardData assembles the template context from the aggregates.
func buildDashboardData(team string, window int,
	rolling []schema.RollingWindowPoint,
	heatmap []schema.WeekdayHeatmapCell,
	seasons []schema.TeamSeasonAggregate,
) (*dashboardData, error) {
	rollingJSON, err := marshalSpec(rollingChart(rolling, window))
	if err != nil {
		return nil, fmt.Errorf("rolling chart: %w", err)
	}
	weekdayJSON, err := marshalSpec(heatmapChart(heatmap))
	if err != nil {
		return nil, fmt.Errorf("weekday chart: %w", err)
	}
	sellJSON, err := marshalSpec(sellThroughChart(seasons))
	if err != nil {
		return nil, fmt.Errorf("sell-through chart: %w", err)
	}
	return &dashboardData{
		Team:        team,
		Rolling:     rollingJSON,
		Weekday:     weekdayJSON,
		SellThrough: sellJSON,
	}, nil
}

// marshalSpec serializes one chart spec for direct embedding in the script
// block. goccy/go-json escapes <, > and & by default, which keeps the
// embedded JSON safe inside HTML.
func marshalSpec(spec chartSpec) (template.JS, error) {
	b, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func trailingWindowLabel(window int) string {
	return strconv.Itoa(window) + "-Game Avg"
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}

func formatSeason(season int) string {
	return strconv.Itoa(season)
}
