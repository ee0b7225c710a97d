package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stadiumlab/turnstile/schema"
)

func sampleGames() []schema.GameRecord {
	date := time.Date(2019, 9, 8, 0, 0, 0, 0, time.UTC)
	return []schema.GameRecord{
		{Date: date, HomeTeam: "Dallas Cowboys", AwayTeam: "New York Giants", Stadium: "AT&T Stadium",
			Attendance: 90000, Capacity: 100000, Weekday: date.Weekday(), Season: 2019},
		{Date: date.AddDate(0, 0, 7), HomeTeam: "Green Bay Packers", AwayTeam: "Minnesota Vikings", Stadium: "Lambeau Field",
			Attendance: 78000, Capacity: 81000, Weekday: date.AddDate(0, 0, 7).Weekday(), Season: 2019},
	}
}

func TestStore_NoneBackend(t *testing.T) {
	store, err := NewStore(schema.NoneSnapshot, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	ctx := context.Background()
	assert.NoError(t, store.Replace(ctx, sampleGames()))

	teams, err := store.Teams(ctx)
	assert.NoError(t, err)
	assert.Empty(t, teams)

	status, err := store.GetStatus(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestStore_SQLite_ReplaceAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")
	store, err := NewStore(schema.SQLiteSnapshot, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, sampleGames()))

	teams, err := store.Teams(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dallas Cowboys", "Green Bay Packers"}, teams)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(2), status.TotalGames)
	assert.Equal(t, int64(2), status.TotalTeams)
	assert.Greater(t, status.FileSizeByte, int64(0))
}

func TestStore_SQLite_ReplaceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")
	store, err := NewStore(schema.SQLiteSnapshot, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, sampleGames()))
	// Replacing with a subset fully discards the prior table.
	require.NoError(t, store.Replace(ctx, sampleGames()[:1]))

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TotalGames)
	assert.Equal(t, int64(1), status.TotalTeams)
}

func TestStore_SQLite_FreshDatabaseStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")
	store, err := NewStore(schema.SQLiteSnapshot, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// No games table yet; status should report an empty snapshot, not error.
	status, err := store.GetStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalGames)
}

func TestStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "snap.db")
	store, err := NewStore(schema.SQLiteSnapshot, path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Replace(context.Background(), sampleGames()))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_UnsupportedBackend(t *testing.T) {
	_, err := NewStore(schema.SnapshotBackend("postgres"), "x.db")
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")
	store, err := NewStore(schema.SQLiteSnapshot, path)
	require.NoError(t, err)
	require.NoError(t, store.Replace(context.Background(), sampleGames()))
	require.NoError(t, store.Close())

	require.NoError(t, Clear(schema.SQLiteSnapshot, path))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Clearing an already-missing file is fine.
	assert.NoError(t, Clear(schema.SQLiteSnapshot, path))
	// None backend has nothing to clear.
	assert.NoError(t, Clear(schema.NoneSnapshot, ""))
}

func TestStoreManager_SetAndGet(t *testing.T) {
	mgr := &StoreManager{}
	assert.Nil(t, mgr.GetSnapshotStore())
	assert.Nil(t, mgr.GetHistoryStore())

	store, err := NewStore(schema.NoneSnapshot, "")
	require.NoError(t, err)
	mgr.SetStores(store, nil)

	assert.Equal(t, store, mgr.GetSnapshotStore())
	mgr.CloseStores()
}
