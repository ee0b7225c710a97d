// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/stadiumlab/turnstile/schema"
)

// SnapshotStore defines the operations on the local snapshot database.
// The snapshot is an intermediate cache that is fully overwritten on each
// build; it is never treated as a stable API. This interface allows the
// store to be mocked for testing.
type SnapshotStore interface {
	// Replace drops and recreates the games table with the given records.
	Replace(ctx context.Context, games []schema.GameRecord) error

	// Teams returns the distinct home team labels in the snapshot.
	Teams(ctx context.Context) ([]string, error)

	// GetStatus returns status information about the snapshot database.
	GetStatus(ctx context.Context) (schema.SnapshotStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// HistoryStore defines the interface for tracking dashboard build runs.
type HistoryStore interface {
	// BeginRun creates a new build run and returns its unique ID.
	BeginRun(startTime time.Time, team string) (int64, error)

	// EndRun updates the build run with completion data.
	EndRun(runID int64, endTime time.Time, gamesJoined int, outputPath string) error

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves all recorded build runs, oldest first.
	GetAllRuns() ([]schema.BuildRunRecord, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager bundles the snapshot and history stores for the build
// pipeline. This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetSnapshotStore() SnapshotStore
	GetHistoryStore() HistoryStore
}
