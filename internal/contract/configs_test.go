package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stadiumlab/turnstile/schema"
)

// validInput returns raw inputs that pass validation, mirroring the defaults
// the CLI layer installs.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Window:          DefaultWindow,
		Precision:       DefaultPrecision,
		Output:          "text",
		SnapshotBackend: "duckdb",
		HistoryBackend:  "sqlite",
		Color:           "yes",
		FetchRetries:    DefaultFetchRetries,
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(DefaultDataDir, "attendance.csv"), cfg.AttendanceCSV)
	assert.Equal(t, filepath.Join(DefaultDataDir, "schedule.csv"), cfg.ScheduleCSV)
	assert.Equal(t, DefaultDashboardOut, cfg.DashboardOut)
	assert.Equal(t, DefaultSnapshotPath, cfg.SnapshotPath)
	assert.Equal(t, DefaultWindow, cfg.Window)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.DuckDBSnapshot, cfg.SnapshotBackend)
	assert.Equal(t, schema.SQLiteHistory, cfg.HistoryBackend)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
}

func TestProcessAndValidate_TeamWhitespaceTrimmed(t *testing.T) {
	input := validInput()
	input.Team = "  Dallas Cowboys  "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "Dallas Cowboys", cfg.Team)
}

func TestProcessAndValidate_WindowBounds(t *testing.T) {
	for _, window := range []int{0, -1, MaxWindow + 1} {
		input := validInput()
		input.Window = window
		err := ProcessAndValidate(&Config{}, input)
		assert.Error(t, err, "window %d should be rejected", window)
	}

	input := validInput()
	input.Window = MaxWindow
	assert.NoError(t, ProcessAndValidate(&Config{}, input))
}

func TestProcessAndValidate_InvalidOutput(t *testing.T) {
	input := validInput()
	input.Output = "xml"
	err := ProcessAndValidate(&Config{}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestProcessAndValidate_OutputCaseInsensitive(t *testing.T) {
	input := validInput()
	input.Output = "JSON"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.JSONOut, cfg.Output)
}

func TestProcessAndValidate_PrecisionBounds(t *testing.T) {
	input := validInput()
	input.Precision = 0
	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input.Precision = 5
	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input.Precision = 4
	assert.NoError(t, ProcessAndValidate(&Config{}, input))
}

func TestProcessAndValidate_InvalidBackends(t *testing.T) {
	input := validInput()
	input.SnapshotBackend = "postgres"
	err := ProcessAndValidate(&Config{}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid snapshot backend")

	input = validInput()
	input.HistoryBackend = "mysql"
	err = ProcessAndValidate(&Config{}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid history backend")
}

func TestProcessAndValidate_SharedSQLiteFileRejected(t *testing.T) {
	input := validInput()
	input.SnapshotBackend = "sqlite"
	input.SnapshotPath = "data/shared.db"
	input.HistoryBackend = "sqlite"
	input.HistoryDBConnect = "data/shared.db"

	err := ProcessAndValidate(&Config{}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different SQLite database files")
}

func TestProcessAndValidate_SeparateSQLiteFilesAllowed(t *testing.T) {
	input := validInput()
	input.SnapshotBackend = "sqlite"
	input.SnapshotPath = "data/snap.db"
	input.HistoryBackend = "sqlite"
	input.HistoryDBConnect = "data/hist.db"

	assert.NoError(t, ProcessAndValidate(&Config{}, input))
}

func TestProcessAndValidate_FetchSettings(t *testing.T) {
	input := validInput()
	input.FetchRetries = 0
	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input = validInput()
	input.FetchTimeout = "2m"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 2*time.Minute, cfg.FetchTimeout)

	input.FetchTimeout = "banana"
	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input.FetchTimeout = "-5s"
	assert.Error(t, ProcessAndValidate(&Config{}, input))
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "perf"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "perf", profile.Prefix)

	assert.Error(t, ProcessProfilingConfig(profile, "bad prefix"))
}

func TestRequireTeam(t *testing.T) {
	assert.Error(t, RequireTeam(&Config{}))
	assert.NoError(t, RequireTeam(&Config{Team: "Dallas Cowboys"}))
}

func TestConfig_Clone(t *testing.T) {
	cfg := &Config{Team: "Dallas Cowboys", Window: 5}
	clone := cfg.Clone()
	clone.Team = "Green Bay Packers"

	assert.Equal(t, "Dallas Cowboys", cfg.Team)
	assert.Equal(t, 5, clone.Window)
}
