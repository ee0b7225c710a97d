package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
	_ "modernc.org/sqlite"             // SQLite driver (pure Go)

	"github.com/stadiumlab/turnstile/internal/contract"
	"github.com/stadiumlab/turnstile/schema"
)

// gamesTable is the name of the joined games table in the snapshot.
const gamesTable = "games"

// StoreImpl handles snapshot storage using either a DuckDB or SQLite file.
type StoreImpl struct {
	db      *sql.DB
	backend schema.SnapshotBackend
	path    string
}

var _ contract.SnapshotStore = &StoreImpl{} // Compile-time check

// NewStore opens (creating if necessary) the snapshot database at the given
// path for the chosen backend. The parent directory is created on demand so
// a fresh checkout can build without setup.
func NewStore(backend schema.SnapshotBackend, path string) (contract.SnapshotStore, error) {
	var db *sql.DB
	var err error

	if backend != schema.NoneSnapshot {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
			}
		}
	}

	switch backend {
	case schema.DuckDBSnapshot:
		db, err = sql.Open("duckdb", path)
		if err != nil {
			return nil, fmt.Errorf("failed to open DuckDB snapshot at %q: %w. Ensure the directory is writable", path, err)
		}

	case schema.SQLiteSnapshot:
		db, err = sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite snapshot at %q: %w. Ensure the directory is writable", path, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.NoneSnapshot:
		// Return a no-op store for disabled snapshotting
		return &StoreImpl{db: nil, backend: backend, path: path}, nil

	default:
		return nil, fmt.Errorf("unsupported snapshot backend: %s. Must be duckdb, sqlite, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open %s snapshot database: %w", backend, err)
	}

	return &StoreImpl{db: db, backend: backend, path: path}, nil
}

// Replace drops and recreates the games table with the given records inside
// a single transaction. A failed build therefore leaves either the previous
// snapshot or the new one, never a half-written table.
func (ss *StoreImpl) Replace(ctx context.Context, games []schema.GameRecord) error {
	// Skip for NoneSnapshot
	if ss.backend == schema.NoneSnapshot || ss.db == nil {
		return nil
	}

	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", gamesTable)); err != nil {
		return fmt.Errorf("failed to drop games table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE %s (
			game_date TEXT NOT NULL,
			home_team TEXT NOT NULL,
			away_team TEXT NOT NULL,
			stadium TEXT NOT NULL,
			attendance INTEGER NOT NULL,
			capacity INTEGER NOT NULL,
			weekday INTEGER NOT NULL,
			season INTEGER NOT NULL
		)
	`, gamesTable)); err != nil {
		return fmt.Errorf("failed to create games table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (game_date, home_team, away_team, stadium, attendance, capacity, weekday, season) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gamesTable))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, g := range games {
		if _, err := stmt.ExecContext(ctx,
			g.Date.Format(contract.DateFormat), g.HomeTeam, g.AwayTeam, g.Stadium,
			g.Attendance, g.Capacity, int(g.Weekday), g.Season,
		); err != nil {
			return fmt.Errorf("failed to insert game %s @ %s: %w", g.AwayTeam, g.HomeTeam, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Teams returns the distinct home team labels present in the snapshot.
func (ss *StoreImpl) Teams(ctx context.Context) ([]string, error) {
	if ss.backend == schema.NoneSnapshot || ss.db == nil {
		return nil, nil
	}

	rows, err := ss.db.QueryContext(ctx, fmt.Sprintf("SELECT DISTINCT home_team FROM %s ORDER BY home_team", gamesTable))
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var teams []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}
	return teams, nil
}

// GetStatus returns status information about the snapshot database.
func (ss *StoreImpl) GetStatus(ctx context.Context) (schema.SnapshotStatus, error) {
	status := schema.SnapshotStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}

	if ss.backend == schema.NoneSnapshot || ss.db == nil {
		return status, nil
	}

	if info, err := os.Stat(ss.path); err == nil {
		status.FileSizeByte = info.Size()
		status.LastBuilt = info.ModTime()
	}

	// A fresh database has no games table yet; that is a valid empty state.
	if !ss.tableExists(ctx) {
		return status, nil
	}

	row := ss.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", gamesTable))
	if err := row.Scan(&status.TotalGames); err != nil {
		return status, fmt.Errorf("failed to get total games: %w", err)
	}

	row = ss.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(DISTINCT home_team) FROM %s", gamesTable))
	if err := row.Scan(&status.TotalTeams); err != nil {
		return status, fmt.Errorf("failed to get total teams: %w", err)
	}

	return status, nil
}

// tableExists reports whether the games table has been created yet.
func (ss *StoreImpl) tableExists(ctx context.Context) bool {
	var query string
	switch ss.backend {
	case schema.DuckDBSnapshot:
		query = "SELECT 1 FROM information_schema.tables WHERE table_name = ?"
	default: // SQLite
		query = "SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?"
	}
	var one int
	err := ss.db.QueryRowContext(ctx, query, gamesTable).Scan(&one)
	return err == nil
}

// Close closes the underlying DB connection.
func (ss *StoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// Clear removes the snapshot database file. The next build recreates it.
func Clear(backend schema.SnapshotBackend, path string) error {
	if backend == schema.NoneSnapshot {
		return nil
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove snapshot file %s: %w", path, err)
	}
	// DuckDB may leave a WAL file behind; best effort cleanup.
	_ = os.Remove(path + ".wal")
	return nil
}

// PrintStatus prints snapshot status information.
func PrintStatus(status schema.SnapshotStatus) {
	fmt.Printf("Snapshot Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Games: %d\n", status.TotalGames)
	fmt.Printf("Total Teams: %d\n", status.TotalTeams)
	if !status.LastBuilt.IsZero() {
		fmt.Printf("Last Built: %s\n", status.LastBuilt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("File Size: %d bytes\n", status.FileSizeByte)
}
