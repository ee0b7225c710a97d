package schema

import "time"

// Custom string types for type safety.
type (
	// OutputMode represents the format of tabular output.
	OutputMode string

	// SnapshotBackend represents the database backend for the snapshot file.
	SnapshotBackend string

	// HistoryBackend represents the database backend for build history.
	HistoryBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All snapshot backends supported.
const (
	DuckDBSnapshot SnapshotBackend = "duckdb" // default
	SQLiteSnapshot SnapshotBackend = "sqlite"
	NoneSnapshot   SnapshotBackend = "none"
)

// All history backends supported.
const (
	SQLiteHistory HistoryBackend = "sqlite" // default
	NoneHistory   HistoryBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSnapshotBackends lists all valid snapshot backends.
var ValidSnapshotBackends = map[SnapshotBackend]struct{}{
	DuckDBSnapshot: {},
	SQLiteSnapshot: {},
	NoneSnapshot:   {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[HistoryBackend]struct{}{
	SQLiteHistory: {},
	NoneHistory:   {},
}

// AllWeekdays lists the seven weekdays in display order, Monday first.
// The heatmap aggregate emits one cell per entry regardless of data coverage.
var AllWeekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}
