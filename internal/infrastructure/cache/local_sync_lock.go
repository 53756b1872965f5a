package cache

import (
	"context"
	"sync/atomic"

	"github.com/erp/sellerops/internal/domain/integration"
)

// LocalSyncLock is an in-process sync lock backed by an atomic flag.
// It does not coordinate across process instances.
type LocalSyncLock struct {
	held atomic.Bool
}

// NewLocalSyncLock creates an unheld in-process lock
func NewLocalSyncLock() *LocalSyncLock {
	return &LocalSyncLock{}
}

// Lock acquires the lock or returns integration.ErrSyncInProgress
func (l *LocalSyncLock) Lock(_ context.Context) error {
	if !l.held.CompareAndSwap(false, true) {
		return integration.ErrSyncInProgress
	}
	return nil
}

// Unlock releases the lock
func (l *LocalSyncLock) Unlock(_ context.Context) error {
	l.held.Store(false)
	return nil
}

// IsLocked reports whether the lock is held
func (l *LocalSyncLock) IsLocked(_ context.Context) (bool, error) {
	return l.held.Load(), nil
}

var _ integration.SyncLock = (*LocalSyncLock)(nil)
