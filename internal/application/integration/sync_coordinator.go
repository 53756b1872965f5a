package integration

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/domain/shared"
)

// StoreSyncer runs order ingestion
type StoreSyncer interface {
	SyncStore(ctx context.Context, storeID uuid.UUID) (*integration.SyncResult, error)
	SyncAllStores(ctx context.Context) (*integration.SyncAllResult, error)
}

// SyncCoordinator serializes sync runs through the sync lock.
// Manual runs fail fast with a state conflict when a run is in progress;
// scheduled runs quietly skip the tick.
type SyncCoordinator struct {
	syncer StoreSyncer
	lock   integration.SyncLock
	logger *zap.Logger

	skippedTicks  atomic.Int64
	completedRuns atomic.Int64

	mu          sync.RWMutex
	lastRunAt   *time.Time
	lastTrigger string
	lastResult  *integration.SyncAllResult
}

// NewSyncCoordinator creates a new SyncCoordinator
func NewSyncCoordinator(syncer StoreSyncer, lock integration.SyncLock, logger *zap.Logger) *SyncCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncCoordinator{
		syncer: syncer,
		lock:   lock,
		logger: logger,
	}
}

// SyncStore runs a manual sync of one store while holding the lock
func (c *SyncCoordinator) SyncStore(ctx context.Context, storeID uuid.UUID) (*integration.SyncResult, error) {
	var result *integration.SyncResult
	err := integration.WithSyncLock(ctx, c.lock, func(ctx context.Context) error {
		r, err := c.syncer.SyncStore(ctx, storeID)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, c.translate(err)
	}
	c.record(TriggerManual, &integration.SyncAllResult{
		TotalStores: 1,
		Results: []integration.StoreSyncResult{{
			StoreID:   result.StoreID,
			StoreName: result.StoreName,
			Result:    result,
		}},
	})
	return result, nil
}

// SyncAllStores runs a manual sync of every eligible store while holding the lock
func (c *SyncCoordinator) SyncAllStores(ctx context.Context) (*integration.SyncAllResult, error) {
	result, err := c.runAll(ctx)
	if err != nil {
		return nil, c.translate(err)
	}
	c.record(TriggerManual, result)
	return result, nil
}

// RunScheduled is the timer entry point. It returns ran=false without
// touching the lock holder when another run is in progress.
func (c *SyncCoordinator) RunScheduled(ctx context.Context) (result *integration.SyncAllResult, ran bool, err error) {
	locked, err := c.lock.IsLocked(ctx)
	if err != nil {
		return nil, false, err
	}
	if locked {
		c.skippedTicks.Add(1)
		c.logger.Info("Scheduled sync skipped, another run is in progress")
		return nil, false, nil
	}

	result, err = c.runAll(ctx)
	if integration.IsSyncInProgress(err) {
		c.skippedTicks.Add(1)
		c.logger.Info("Scheduled sync skipped, lock taken concurrently")
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	c.record(TriggerScheduled, result)
	return result, true, nil
}

// Status reports whether a run is in progress and the outcome of the last one
func (c *SyncCoordinator) Status(ctx context.Context) (*SyncStatusResponse, error) {
	locked, err := c.lock.IsLocked(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &SyncStatusResponse{
		Locked:        locked,
		LastRunAt:     c.lastRunAt,
		LastTrigger:   c.lastTrigger,
		LastResult:    c.lastResult,
		SkippedTicks:  c.skippedTicks.Load(),
		CompletedRuns: c.completedRuns.Load(),
	}, nil
}

func (c *SyncCoordinator) runAll(ctx context.Context) (*integration.SyncAllResult, error) {
	var result *integration.SyncAllResult
	err := integration.WithSyncLock(ctx, c.lock, func(ctx context.Context) error {
		r, err := c.syncer.SyncAllStores(ctx)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, err
}

func (c *SyncCoordinator) record(trigger string, result *integration.SyncAllResult) {
	now := time.Now()
	c.completedRuns.Add(1)
	c.mu.Lock()
	c.lastRunAt = &now
	c.lastTrigger = trigger
	c.lastResult = result
	c.mu.Unlock()

	c.logger.Info("Order sync run completed",
		zap.String("trigger", trigger),
		zap.Int("total_stores", result.TotalStores),
	)
}

func (c *SyncCoordinator) translate(err error) error {
	if integration.IsSyncInProgress(err) {
		return shared.NewStateConflictError("order sync already in progress")
	}
	return err
}
