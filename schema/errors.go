package schema

import "fmt"

// DataLoadError reports a missing, unreadable or malformed input dataset.
type DataLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot load %s: %s", e.Path, e.Reason)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// JoinError reports that the attendance and schedule tables share no keys.
// This almost always means the date or team label formats disagree between
// the two datasets, so both row counts are included for diagnosis.
type JoinError struct {
	AttendanceRows int
	ScheduleRows   int
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("no games matched on (date, home_team): %d attendance rows vs %d schedule rows; check key formats",
		e.AttendanceRows, e.ScheduleRows)
}

// UnknownTeamError reports a team filter that matches no team label in the
// joined data. Known labels are included so the caller can print suggestions.
type UnknownTeamError struct {
	Team  string
	Known []string
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("team %q not present in dataset (%d teams available)", e.Team, len(e.Known))
}

// RenderError reports a failure to write the dashboard document.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot write dashboard to %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
