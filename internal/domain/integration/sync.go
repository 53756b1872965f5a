package integration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SkippedOrder records an order left out of ingestion because it references
// products that are unknown locally
type SkippedOrder struct {
	ExternalID        string   `json:"external_id"`
	OrderNumber       string   `json:"order_number"`
	MissingProductIDs []string `json:"missing_product_ids"`
}

// SyncResult summarizes one store's sync run
type SyncResult struct {
	StoreID       uuid.UUID      `json:"store_id"`
	StoreName     string         `json:"store_name"`
	Saved         int            `json:"saved"`
	Updated       int            `json:"updated"`
	Skipped       int            `json:"skipped"`
	Errors        int            `json:"errors"`
	SkippedOrders []SkippedOrder `json:"skipped_orders"`
	PagesFetched  int            `json:"pages_fetched"`
	StartedAt     time.Time      `json:"started_at"`
	FinishedAt    time.Time      `json:"finished_at"`
}

// NewSyncResult starts an empty result for a store
func NewSyncResult(store *Store) *SyncResult {
	return &SyncResult{
		StoreID:       store.ID,
		StoreName:     store.Name,
		SkippedOrders: make([]SkippedOrder, 0),
		StartedAt:     time.Now(),
	}
}

// AddSkipped records a skipped order
func (r *SyncResult) AddSkipped(externalID, orderNumber string, missing []string) {
	r.Skipped++
	r.SkippedOrders = append(r.SkippedOrders, SkippedOrder{
		ExternalID:        externalID,
		OrderNumber:       orderNumber,
		MissingProductIDs: missing,
	})
}

// Finish stamps the end of the run
func (r *SyncResult) Finish() {
	r.FinishedAt = time.Now()
}

// StoreSyncResult is one entry of a multi-store run. Error is set when the
// store could not be synced at all; Result is nil in that case.
type StoreSyncResult struct {
	StoreID   uuid.UUID   `json:"store_id"`
	StoreName string      `json:"store_name"`
	Result    *SyncResult `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// SyncAllResult summarizes a run over all eligible stores
type SyncAllResult struct {
	TotalStores int               `json:"total_stores"`
	Results     []StoreSyncResult `json:"results"`
}

// ---------------------------------------------------------------------------
// Sync coordination lock
// ---------------------------------------------------------------------------

// SyncLock keeps sync runs from overlapping. It is advisory: it only
// coordinates callers that go through it.
type SyncLock interface {
	// Lock acquires the lock or returns ErrSyncInProgress if it is held
	Lock(ctx context.Context) error
	// Unlock releases the lock; releasing an unheld lock is a no-op
	Unlock(ctx context.Context) error
	// IsLocked reports whether the lock is currently held
	IsLocked(ctx context.Context) (bool, error)
}

// WithSyncLock runs fn while holding the lock. The lock is released on
// every exit path, including a panic inside fn.
func WithSyncLock(ctx context.Context, lock SyncLock, fn func(ctx context.Context) error) (err error) {
	if err := lock.Lock(ctx); err != nil {
		return err
	}
	defer func() {
		// a cancelled request context must not keep the lock held
		unlockErr := lock.Unlock(context.WithoutCancel(ctx))
		if err == nil && unlockErr != nil {
			err = unlockErr
		}
	}()
	return fn(ctx)
}

// IsSyncInProgress reports whether err signals a held sync lock
func IsSyncInProgress(err error) bool {
	return errors.Is(err, ErrSyncInProgress)
}
