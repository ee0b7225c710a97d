package snapshot

import (
	"fmt"
	"sync"

	"github.com/stadiumlab/turnstile/internal/history"
	"github.com/stadiumlab/turnstile/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager with separate snapshot and
// history stores. Either backend can be the none value to disable that store.
func InitStores(snapBackend schema.SnapshotBackend, snapPath string, histBackend schema.HistoryBackend, histConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		snapStore, err := NewStore(snapBackend, snapPath)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize snapshot store: %w", err)
			return
		}

		histStore, err := history.NewStore(histBackend, histConnStr)
		if err != nil {
			_ = snapStore.Close()
			initErr = fmt.Errorf("failed to initialize history store: %w", err)
			return
		}

		Manager.SetStores(snapStore, histStore)
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.CloseStores()
	})
}
