// Package snapshot manages the local analytical snapshot database.
//
// The snapshot is a single local database file holding the joined game table.
// It is fully overwritten on every build and serves only as an intermediate
// cache for ad-hoc querying; it is not a stable API.
package snapshot

import (
	"sync"

	"github.com/stadiumlab/turnstile/internal/contract"
)

// StoreManager manages the snapshot and history store instances.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	snapshot     contract.SnapshotStore
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetSnapshotStore returns the snapshot store.
func (mgr *StoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshot
}

// GetHistoryStore returns the history store.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}

// SetStores installs the store implementations on the manager.
func (mgr *StoreManager) SetStores(snapshot contract.SnapshotStore, history contract.HistoryStore) {
	mgr.Lock()
	defer mgr.Unlock()
	mgr.snapshot = snapshot
	mgr.history = history
}

// CloseStores closes whichever stores are initialized.
func (mgr *StoreManager) CloseStores() {
	mgr.Lock()
	defer mgr.Unlock()
	if mgr.snapshot != nil {
		_ = mgr.snapshot.Close()
	}
	if mgr.history != nil {
		_ = mgr.history.Close()
	}
}
