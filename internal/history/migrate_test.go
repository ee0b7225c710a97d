package history

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stadiumlab/turnstile/schema"
)

func TestMigrate_UnsupportedBackend(t *testing.T) {
	err := Migrate(schema.NoneHistory, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestMigrate_UpCreatesTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hist.db")

	require.NoError(t, Migrate(schema.SQLiteHistory, dbPath, -1))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", buildRunsTable).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, buildRunsTable, name)
}

func TestMigrate_UpIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hist.db")

	require.NoError(t, Migrate(schema.SQLiteHistory, dbPath, -1))
	// Second run is a no-op, not an error.
	require.NoError(t, Migrate(schema.SQLiteHistory, dbPath, -1))
}

func TestMigrate_DownRemovesTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hist.db")

	require.NoError(t, Migrate(schema.SQLiteHistory, dbPath, -1))
	require.NoError(t, Migrate(schema.SQLiteHistory, dbPath, 0))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", buildRunsTable).Scan(&name)
	assert.Error(t, err)
}

func TestMigrate_SpecificVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hist.db")
	require.NoError(t, Migrate(schema.SQLiteHistory, dbPath, 1))
}
