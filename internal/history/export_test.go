package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stadiumlab/turnstile/schema"
)

func TestExecuteExport_RequiresOutputFile(t *testing.T) {
	store, err := NewStore(schema.NoneHistory, "")
	require.NoError(t, err)

	err = ExecuteExport(store, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file")
}

func TestExecuteExport_EmptyHistory(t *testing.T) {
	store, err := NewStore(schema.SQLiteHistory, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = ExecuteExport(store, filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no build history")
}

func TestExecuteExport_WritesParquetFile(t *testing.T) {
	store, err := NewStore(schema.SQLiteHistory, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), "Dallas Cowboys")
	require.NoError(t, err)
	require.NoError(t, store.EndRun(runID, time.Now(), 16, "html/dashboard.html"))

	outputFile := filepath.Join(t.TempDir(), "export")
	require.NoError(t, ExecuteExport(store, outputFile))

	info, err := os.Stat(outputFile + ".build_runs.parquet")
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
