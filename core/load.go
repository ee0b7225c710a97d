// Package core has the data pipeline logic for turnstile: loading the raw
// datasets, joining them into game records, and computing the chart-ready
// aggregates.
package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/schema"
)

// Required columns per dataset. Extra columns are tolerated and ignored;
// missing ones fail the load.
var (
	attendanceColumns = []string{"date", "home_team", "away_team", "attendance"}
	scheduleColumns   = []string{"date", "home_team", "stadium", "capacity"}
)

// LoadAttendance reads and type-checks the attendance dataset.
func LoadAttendance(path string) ([]schema.AttendanceRow, error) {
	var rows []schema.AttendanceRow
	err := loadCSV(path, attendanceColumns, func(lineNum int, get func(string) string) error {
		date, err := parseDate(get("date"))
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		att, err := parseCount(get("attendance"), "attendance")
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		rows = append(rows, schema.AttendanceRow{
			Date:       date,
			HomeTeam:   strings.TrimSpace(get("home_team")),
			AwayTeam:   strings.TrimSpace(get("away_team")),
			Attendance: att,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LoadSchedule reads and type-checks the schedule dataset.
func LoadSchedule(path string) ([]schema.ScheduleRow, error) {
	var rows []schema.ScheduleRow
	err := loadCSV(path, scheduleColumns, func(lineNum int, get func(string) string) error {
		date, err := parseDate(get("date"))
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		cap, err := parseCount(get("capacity"), "capacity")
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		if cap <= 0 {
			return fmt.Errorf("line %d: capacity must be positive (got %d)", lineNum, cap)
		}
		rows = append(rows, schema.ScheduleRow{
			Date:     date,
			HomeTeam: strings.TrimSpace(get("home_team")),
			Stadium:  strings.TrimSpace(get("stadium")),
			Capacity: cap,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// loadCSV opens a CSV file, validates its header against the required
// columns, and invokes scan once per data row with a column accessor.
// Any failure is reported as a *schema.DataLoadError.
func loadCSV(path string, required []string, scan func(lineNum int, get func(string) string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &schema.DataLoadError{Path: path, Reason: "file not readable", Err: err}
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return &schema.DataLoadError{Path: path, Reason: "missing header row", Err: err}
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return &schema.DataLoadError{Path: path, Reason: fmt.Sprintf("missing required column %q", col)}
		}
	}

	lineNum := 1 // header was line 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &schema.DataLoadError{Path: path, Reason: "malformed CSV", Err: err}
		}
		lineNum++

		get := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}
		if err := scan(lineNum, get); err != nil {
			return &schema.DataLoadError{Path: path, Reason: "malformed row", Err: err}
		}
	}
	return nil
}

// parseDate parses a day-precision date cell.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(contract.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected %s)", s, contract.DateFormat)
	}
	return t, nil
}

// parseCount parses a non-negative integer cell.
func parseCount(s, field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", field, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s cannot be negative (got %d)", field, n)
	}
	return n, nil
}
