// Package history tracks dashboard build runs in a local SQLite database.
//
// Every build records when it started, which team it targeted, how many
// games survived the join, and where the dashboard landed. Tracking is
// best effort and never blocks a build.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/schema"
)

// buildRunsTable is the name of the table for build run tracking.
const buildRunsTable = "turnstile_build_runs"

// StoreImpl implements the HistoryStore interface.
type StoreImpl struct {
	db      *sql.DB
	backend schema.HistoryBackend
}

var _ contract.HistoryStore = &StoreImpl{} // Compile-time check

// NewStore creates a new HistoryStore with the specified backend.
func NewStore(backend schema.HistoryBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteHistory:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.NoneHistory:
		// Return a no-op store for disabled tracking
		return &StoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s history database: %w", backend, err)
	}

	if err := createBuildRunsTable(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create build runs table: %w", err)
	}

	return &StoreImpl{db: db, backend: backend}, nil
}

// createBuildRunsTable creates the build run tracking table.
func createBuildRunsTable(db *sql.DB) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id INTEGER PRIMARY KEY AUTOINCREMENT,
			team TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT,
			run_duration_ms INTEGER,
			games_joined INTEGER,
			output_path TEXT
		);
	`, buildRunsTable)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", buildRunsTable, err)
	}
	return nil
}

// BeginRun creates a new build run and returns its unique ID.
func (hs *StoreImpl) BeginRun(startTime time.Time, team string) (int64, error) {
	// Skip for NoneHistory
	if hs.backend == schema.NoneHistory || hs.db == nil {
		return 0, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (team, start_time) VALUES (?, ?)`, buildRunsTable)
	result, err := hs.db.Exec(query, team, startTime.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to insert build run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get build run ID: %w", err)
	}
	return runID, nil
}

// EndRun updates the build run with completion data.
func (hs *StoreImpl) EndRun(runID int64, endTime time.Time, gamesJoined int, outputPath string) error {
	// Skip for NoneHistory
	if hs.backend == schema.NoneHistory || hs.db == nil {
		return nil
	}

	// Get the start_time to calculate duration
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, buildRunsTable)
	var startTimeStr string
	if err := hs.db.QueryRow(query, runID).Scan(&startTimeStr); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
	if err != nil {
		return fmt.Errorf("failed to parse start_time: %w", err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(
		`UPDATE %s SET end_time = ?, run_duration_ms = ?, games_joined = ?, output_path = ? WHERE run_id = ?`,
		buildRunsTable)
	if _, err := hs.db.Exec(updateQuery,
		endTime.Format(time.RFC3339Nano), durationMs, gamesJoined, outputPath, runID); err != nil {
		return fmt.Errorf("failed to update build run: %w", err)
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *StoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(hs.backend),
		Connected: hs.db != nil,
	}

	if hs.backend == schema.NoneHistory || hs.db == nil {
		return status, nil
	}

	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", buildRunsTable)
	if err := hs.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", buildRunsTable)
		var lastRunTimeStr string
		if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &lastRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", buildRunsTable)
		var oldestRunTimeStr string
		if err := hs.db.QueryRow(oldestRunQuery).Scan(&oldestRunTimeStr); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime
	}

	return status, nil
}

// GetAllRuns retrieves all recorded build runs, oldest first.
func (hs *StoreImpl) GetAllRuns() ([]schema.BuildRunRecord, error) {
	// Skip for NoneHistory
	if hs.backend == schema.NoneHistory || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT run_id, team, start_time, end_time, run_duration_ms, games_joined, output_path FROM %s ORDER BY run_id",
		buildRunsTable)
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query build runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.BuildRunRecord
	for rows.Next() {
		var record schema.BuildRunRecord
		var startTimeStr string
		var endTimeStr *string
		var gamesJoined *int32
		if err := rows.Scan(&record.RunID, &record.Team, &startTimeStr, &endTimeStr,
			&record.RunDurationMs, &gamesJoined, &record.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to scan build run: %w", err)
		}

		startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		record.StartTime = startTime

		if endTimeStr != nil {
			endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &endTime
		}
		if gamesJoined != nil {
			record.GamesJoined = *gamesJoined
		}

		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating build runs: %w", err)
	}

	return results, nil
}

// Close closes the underlying connection.
func (hs *StoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// Clear removes the history data for the specified backend.
// For SQLite, it deletes the database file. For NoneHistory, it does nothing.
func Clear(backend schema.HistoryBackend, dbFilePath string) error {
	switch backend {
	case schema.SQLiteHistory:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.NoneHistory:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// PrintStatus prints history status information.
func PrintStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
	}
}
