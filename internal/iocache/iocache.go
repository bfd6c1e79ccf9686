// Package iocache caches parsed chart timing in a SQL database.
package iocache

import (
	"sync"

	"github.com/huangsam/replaystat/internal/contract"
)

// CacheStoreManager manages the CacheStore instances of the process.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	chart        contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetChartStore returns the chart timing CacheStore.
func (mgr *CacheStoreManager) GetChartStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.chart
}
