// Package fetcher downloads the attendance and schedule datasets into the
// local data directory. The attendance dataset is required; the schedule
// dataset is optional because some dataset mirrors omit it.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/stadiumlab/turnstile/internal/contract"
)

// errNotFound marks a 404 response so optional files can tolerate it.
var errNotFound = errors.New("dataset not found (HTTP 404)")

// Fetcher downloads dataset files with bounded retries.
type Fetcher struct {
	client  *http.Client
	retries int
	timeout time.Duration
}

// New returns a Fetcher with the given retry budget and per-attempt timeout.
func New(retries int, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  &http.Client{},
		retries: retries,
		timeout: timeout,
	}
}

// FetchAll downloads both datasets into the configured data directory.
// A missing schedule dataset logs a warning; a missing attendance dataset
// fails the run.
func (f *Fetcher) FetchAll(ctx context.Context, cfg *contract.Config) error {
	attendanceURL := cfg.AttendanceURL
	if attendanceURL == "" {
		attendanceURL = contract.DefaultAttendanceURL
	}
	scheduleURL := cfg.ScheduleURL
	if scheduleURL == "" {
		scheduleURL = contract.DefaultScheduleURL
	}

	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	if err := f.fetchFile(ctx, attendanceURL, cfg.AttendanceCSV); err != nil {
		return fmt.Errorf("failed to fetch attendance dataset: %w", err)
	}
	fmt.Printf("Fetched attendance dataset to %s\n", cfg.AttendanceCSV)

	if err := f.fetchFile(ctx, scheduleURL, cfg.ScheduleCSV); err != nil {
		if errors.Is(err, errNotFound) {
			contract.LogWarn("schedule dataset not available, skipping", err)
			return nil
		}
		return fmt.Errorf("failed to fetch schedule dataset: %w", err)
	}
	fmt.Printf("Fetched schedule dataset to %s\n", cfg.ScheduleCSV)

	return nil
}

// fetchFile downloads one URL to destPath, retrying transient failures.
// The file is written via a temporary sibling and renamed into place so a
// failed download never truncates an existing dataset.
func (f *Fetcher) fetchFile(ctx context.Context, url, destPath string) error {
	var lastErr error
	for attempt := 1; attempt <= f.retries; attempt++ {
		err := f.fetchOnce(ctx, url, destPath)
		if err == nil {
			return nil
		}
		// A 404 will not resolve on retry.
		if errors.Is(err, errNotFound) {
			return err
		}
		lastErr = err
		if attempt < f.retries {
			contract.LogWarn(fmt.Sprintf("download attempt %d/%d failed, retrying", attempt, f.retries), err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}
	return fmt.Errorf("all %d download attempts failed: %w", f.retries, lastErr)
}

// fetchOnce performs a single download attempt with its own timeout.
func (f *Fetcher) fetchOnce(ctx context.Context, url, destPath string) error {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", url, errNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	tmpPath := destPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(destPath), err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", destPath, err)
	}
	return nil
}
