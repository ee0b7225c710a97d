package contract

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/stadiumlab/turnstile/schema"
)

// Default values for configuration.
const (
	DefaultWindow       = 3
	MaxWindow           = 20
	DefaultPrecision    = 2
	DefaultFetchRetries = 3
	DefaultFetchTimeout = 30 * time.Second

	DefaultDataDir      = "data/raw"
	DefaultSnapshotPath = "data/stadium.duckdb"
	DefaultDashboardOut = "html/dashboard.html"
)

// Default dataset URLs, matching the TidyTuesday attendance release the
// project was originally built around. Both are overridable via config.
const (
	DefaultAttendanceURL = "https://raw.githubusercontent.com/rfordatascience/tidytuesday/main/data/2020/2020-02-04/attendance.csv"
	DefaultScheduleURL   = "https://raw.githubusercontent.com/rfordatascience/tidytuesday/main/data/2020/2020-02-04/games.csv"
)

// DateFormat is the day-precision date representation used in both datasets.
const DateFormat = "2006-01-02"

// Config holds the runtime configuration for a turnstile run.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir       string
	AttendanceCSV string
	ScheduleCSV   string
	AttendanceURL string
	ScheduleURL   string

	Team   string
	Window int

	SnapshotBackend schema.SnapshotBackend
	SnapshotPath    string

	HistoryBackend   schema.HistoryBackend
	HistoryDBConnect string

	DashboardOut string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	FetchRetries int
	FetchTimeout time.Duration
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	DataDir       string `mapstructure:"data-dir"`
	AttendanceURL string `mapstructure:"attendance-url"`
	ScheduleURL   string `mapstructure:"schedule-url"`

	Team   string `mapstructure:"team"`
	Window int    `mapstructure:"window"`

	SnapshotBackend string `mapstructure:"snapshot-backend"`
	SnapshotPath    string `mapstructure:"db"`

	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	DashboardOut string `mapstructure:"out"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`

	FetchRetries int    `mapstructure:"fetch-retries"`
	FetchTimeout string `mapstructure:"fetch-timeout"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processPaths(cfg, input); err != nil {
		return err
	}
	if err := processPipeline(cfg, input); err != nil {
		return err
	}
	if err := processOutput(cfg, input); err != nil {
		return err
	}
	if err := processBackends(cfg, input); err != nil {
		return err
	}
	if err := processFetch(cfg, input); err != nil {
		return err
	}
	return nil
}

// processPaths resolves data directory and file locations.
func processPaths(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = input.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	cfg.AttendanceCSV = filepath.Join(cfg.DataDir, "attendance.csv")
	cfg.ScheduleCSV = filepath.Join(cfg.DataDir, "schedule.csv")

	cfg.AttendanceURL = input.AttendanceURL
	cfg.ScheduleURL = input.ScheduleURL

	cfg.DashboardOut = input.DashboardOut
	if cfg.DashboardOut == "" {
		cfg.DashboardOut = DefaultDashboardOut
	}

	cfg.SnapshotPath = input.SnapshotPath
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = DefaultSnapshotPath
	}

	return nil
}

// processPipeline validates the team filter and rolling window.
func processPipeline(cfg *Config, input *ConfigRawInput) error {
	// The team is matched exactly against dataset labels later in the
	// pipeline; here we only normalize surrounding whitespace.
	cfg.Team = strings.TrimSpace(input.Team)

	if input.Window < 1 || input.Window > MaxWindow {
		return fmt.Errorf("window must be between 1 and %d (received %d)", MaxWindow, input.Window)
	}
	cfg.Window = input.Window

	return nil
}

// processOutput validates output format, precision and color settings.
func processOutput(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Width = input.Width
	return nil
}

// processBackends validates snapshot and history backend configurations.
func processBackends(cfg *Config, input *ConfigRawInput) error {
	cfg.SnapshotBackend = schema.SnapshotBackend(strings.ToLower(input.SnapshotBackend))
	if _, ok := schema.ValidSnapshotBackends[cfg.SnapshotBackend]; !ok {
		return fmt.Errorf("invalid snapshot backend '%s'. must be duckdb, sqlite, none", input.SnapshotBackend)
	}

	cfg.HistoryBackend = schema.HistoryBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect

	// Guard against the snapshot and history stores sharing one SQLite file.
	if cfg.SnapshotBackend == schema.SQLiteSnapshot && cfg.HistoryBackend == schema.SQLiteHistory {
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if cfg.SnapshotPath == historyPath {
			return fmt.Errorf("snapshot and history storage must use different SQLite database files. Both resolve to %q", cfg.SnapshotPath)
		}
	}

	return nil
}

// processFetch validates download settings.
func processFetch(cfg *Config, input *ConfigRawInput) error {
	if input.FetchRetries < 1 || input.FetchRetries > 10 {
		return fmt.Errorf("fetch-retries must be between 1 and 10 (received %d)", input.FetchRetries)
	}
	cfg.FetchRetries = input.FetchRetries

	if input.FetchTimeout == "" {
		cfg.FetchTimeout = DefaultFetchTimeout
		return nil
	}
	timeout, err := time.ParseDuration(input.FetchTimeout)
	if err != nil {
		return fmt.Errorf("invalid fetch-timeout '%s': %w", input.FetchTimeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("fetch-timeout must be positive (received %s)", timeout)
	}
	cfg.FetchTimeout = timeout
	return nil
}

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig validates and applies the profiling prefix.
// An empty prefix disables profiling.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		profile.Enabled = false
		return nil
	}
	if strings.ContainsAny(prefix, " \t") {
		return fmt.Errorf("profile prefix must not contain whitespace (received %q)", prefix)
	}
	profile.Enabled = true
	profile.Prefix = prefix
	return nil
}

// RequireTeam verifies that a team filter was provided. Commands that scope
// their work to one team (build, stats) call this before running the pipeline.
func RequireTeam(cfg *Config) error {
	if cfg.Team == "" {
		return fmt.Errorf("--team is required (exact team label as it appears in the dataset)")
	}
	return nil
}
