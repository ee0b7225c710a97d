package render

import (
	"time"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/schema"
)

// trace is a single Plotly trace. Only the fields the three dashboard charts
// use are modeled; the zero values marshal away via omitempty.
type trace struct {
	Type   string      `json:"type"`
	Name   string      `json:"name,omitempty"`
	Mode   string      `json:"mode,omitempty"`
	X      []string    `json:"x,omitempty"`
	Y      []float64   `json:"y,omitempty"`
	Z      [][]float64 `json:"z,omitempty"`
	Text   [][]string  `json:"text,omitempty"`
	ColorS string      `json:"colorscale,omitempty"`
}

// layout is the Plotly layout for one chart.
type layout struct {
	Title axisTitle `json:"title"`
	XAxis axis      `json:"xaxis,omitempty"`
	YAxis axis      `json:"yaxis,omitempty"`
}

type axisTitle struct {
	Text string `json:"text"`
}

type axis struct {
	Title axisTitle `json:"title,omitempty"`
	Range []float64 `json:"range,omitempty"`
}

// chartSpec pairs traces with a layout, mirroring Plotly.newPlot arguments.
type chartSpec struct {
	Data   []trace `json:"data"`
	Layout layout  `json:"layout"`
}

// rollingChart builds the "Rolling Attendance vs Capacity" line chart.
func rollingChart(points []schema.RollingWindowPoint, window int) chartSpec {
	dates := make([]string, len(points))
	att := make([]float64, len(points))
	cap := make([]float64, len(points))
	for i, p := range points {
		dates[i] = p.Date.Format(contract.DateFormat)
		att[i] = p.RollingAttendance
		cap[i] = p.RollingCapacity
	}
	return chartSpec{
		Data: []trace{
			{Type: "scatter", Mode: "lines", Name: "Attendance", X: dates, Y: att},
			{Type: "scatter", Mode: "lines", Name: "Capacity", X: dates, Y: cap},
		},
		Layout: layout{
			Title: axisTitle{Text: "Rolling Attendance vs Capacity"},
			XAxis: axis{Title: axisTitle{Text: "Date"}},
			YAxis: axis{Title: axisTitle{Text: trailingWindowLabel(window)}},
		},
	}
}

// heatmapChart builds the weekday-effect heatmap. Rows are the two cell
// metrics (game count, average attendance, each normalized to its own max)
// and columns are the seven weekdays, so sparse weekdays still render.
func heatmapChart(cells []schema.WeekdayHeatmapCell) chartSpec {
	days := make([]string, len(schema.AllWeekdays))
	counts := make([]float64, len(schema.AllWeekdays))
	avgs := make([]float64, len(schema.AllWeekdays))
	labels := make([][]string, 2)
	labels[0] = make([]string, len(schema.AllWeekdays))
	labels[1] = make([]string, len(schema.AllWeekdays))

	byDay := make(map[time.Weekday]schema.WeekdayHeatmapCell, len(cells))
	for _, c := range cells {
		byDay[c.Weekday] = c
	}
	for i, wd := range schema.AllWeekdays {
		c := byDay[wd]
		days[i] = wd.String()[:3]
		counts[i] = float64(c.GameCount)
		avgs[i] = c.AvgAttendance
		labels[0][i] = formatCount(c.GameCount)
		labels[1][i] = formatCount(int(c.AvgAttendance))
	}

	return chartSpec{
		Data: []trace{{
			Type:   "heatmap",
			X:      days,
			Z:      [][]float64{normalize(counts), normalize(avgs)},
			Text:   labels,
			ColorS: "Viridis",
		}},
		Layout: layout{
			Title: axisTitle{Text: "Weekday Effect"},
			XAxis: axis{Title: axisTitle{Text: "Weekday"}},
		},
	}
}

// sellThroughChart builds the season-over-season sell-through line chart.
// The axis is clamped to [0, 1.05] but the plotted values stay unclamped so
// standing-room seasons read above the capacity line.
func sellThroughChart(seasons []schema.TeamSeasonAggregate) chartSpec {
	x := make([]string, len(seasons))
	y := make([]float64, len(seasons))
	for i, s := range seasons {
		x[i] = formatSeason(s.Season)
		y[i] = s.SellThrough
	}
	return chartSpec{
		Data: []trace{
			{Type: "scatter", Mode: "lines+markers", Name: "Sell-through", X: x, Y: y},
		},
		Layout: layout{
			Title: axisTitle{Text: "Season-over-Season Sell-through"},
			XAxis: axis{Title: axisTitle{Text: "Season"}},
			YAxis: axis{Title: axisTitle{Text: "Sell-through"}, Range: []float64{0, 1.05}},
		},
	}
}

// normalize scales a series into [0, 1] so two metrics with very different
// magnitudes can share one heatmap colorscale.
func normalize(vs []float64) []float64 {
	max := 0.0
	for _, v := range vs {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(vs))
	if max == 0 {
		return out
	}
	for i, v := range vs {
		out[i] = v / max
	}
	return out
}
