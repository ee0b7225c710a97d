package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stadiumlab/turnstile/internal/contract"
)

const attendanceBody = "date,home_team,away_team,attendance\n2019-09-08,Dallas Cowboys,New York Giants,90000\n"
const scheduleBody = "date,home_team,stadium,capacity\n2019-09-08,Dallas Cowboys,AT&T Stadium,100000\n"

func newFetchConfig(t *testing.T, attendanceURL, scheduleURL string) *contract.Config {
	t.Helper()
	dataDir := t.TempDir()
	return &contract.Config{
		DataDir:       dataDir,
		AttendanceCSV: filepath.Join(dataDir, "attendance.csv"),
		ScheduleCSV:   filepath.Join(dataDir, "schedule.csv"),
		AttendanceURL: attendanceURL,
		ScheduleURL:   scheduleURL,
	}
}

func TestFetchAll_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/attendance.csv":
			_, _ = w.Write([]byte(attendanceBody))
		case "/schedule.csv":
			_, _ = w.Write([]byte(scheduleBody))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := newFetchConfig(t, srv.URL+"/attendance.csv", srv.URL+"/schedule.csv")
	f := New(3, 5*time.Second)

	require.NoError(t, f.FetchAll(context.Background(), cfg))

	att, err := os.ReadFile(cfg.AttendanceCSV)
	require.NoError(t, err)
	assert.Equal(t, attendanceBody, string(att))

	sched, err := os.ReadFile(cfg.ScheduleCSV)
	require.NoError(t, err)
	assert.Equal(t, scheduleBody, string(sched))
}

func TestFetchAll_MissingScheduleIsTolerated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/attendance.csv" {
			_, _ = w.Write([]byte(attendanceBody))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := newFetchConfig(t, srv.URL+"/attendance.csv", srv.URL+"/schedule.csv")
	f := New(3, 5*time.Second)

	// Schedule 404 downgrades to a warning.
	require.NoError(t, f.FetchAll(context.Background(), cfg))

	_, err := os.Stat(cfg.AttendanceCSV)
	assert.NoError(t, err)
	_, err = os.Stat(cfg.ScheduleCSV)
	assert.True(t, os.IsNotExist(err))
}

func TestFetchAll_MissingAttendanceFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	cfg := newFetchConfig(t, srv.URL+"/attendance.csv", srv.URL+"/schedule.csv")
	f := New(3, 5*time.Second)

	err := f.FetchAll(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attendance")
}

func TestFetchFile_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(attendanceBody))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "attendance.csv")
	f := New(3, 5*time.Second)

	require.NoError(t, f.fetchFile(context.Background(), srv.URL, dest))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchFile_NoRetryOn404(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "x.csv")
	f := New(5, 5*time.Second)

	err := f.fetchFile(context.Background(), srv.URL, dest)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchFile_ExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "x.csv")
	f := New(2, 5*time.Second)

	err := f.fetchFile(context.Background(), srv.URL, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 download attempts failed")
}

func TestFetchOnce_DoesNotTruncateExistingOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "attendance.csv")
	require.NoError(t, os.WriteFile(dest, []byte("previous dataset"), 0o600))

	f := New(1, 5*time.Second)
	require.Error(t, f.fetchFile(context.Background(), srv.URL, dest))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "previous dataset", string(content))
}
