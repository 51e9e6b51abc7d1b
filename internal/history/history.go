// Package history records scoring runs and their evaluations in SQL storage.
package history

import (
	"sync"

	"github.com/huangsam/trustscore/internal/contract"
)

// HistoryStoreManager owns the process-wide HistoryStore.
type HistoryStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.HistoryStore
}

var _ contract.HistoryManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the configured HistoryStore, or nil before init.
func (mgr *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}
