package store

import (
	"fmt"
	"sync"

	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// ScoreStoreManager hands out the configured ScoreStore instance.
type ScoreStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	scores       contract.ScoreStore
}

var _ contract.StoreManager = &ScoreStoreManager{} // Compile-time check

// GetScoreStore returns the active ScoreStore.
func (mgr *ScoreStoreManager) GetScoreStore() contract.ScoreStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.scores
}

// Global Manager instance for main logic.
var (
	Manager   = &ScoreStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// ResolveConnStr returns the connection string for the configured backend,
// falling back to the workspace-local SQLite file when none is set.
func ResolveConnStr(cfg *contract.Config) string {
	if cfg.StoreDBConnect != "" {
		return cfg.StoreDBConnect
	}
	if cfg.StoreBackend == schema.SQLiteBackend {
		return contract.DefaultStorePath(cfg.WorkspaceRoot)
	}
	return ""
}

// InitStores initializes the global store manager for the configured backend.
func InitStores(cfg *contract.Config) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		scores, err := NewScoreStore(cfg.StoreBackend, ResolveConnStr(cfg))
		if err != nil {
			initErr = fmt.Errorf("failed to initialize score store: %w", err)
			return
		}

		Manager.Lock()
		Manager.scores = scores
		Manager.Unlock()
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.scores != nil {
			_ = Manager.scores.Close()
		}
	})
}
