package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/domain/shared"
)

func TestSyncCoordinator_ManualRunHoldsAndReleasesLock(t *testing.T) {
	ctx := context.Background()
	lock := new(MockSyncLock)
	syncer := new(MockStoreSyncer)
	c := NewSyncCoordinator(syncer, lock, nil)

	storeID := uuid.New()
	lock.On("Lock", mock.Anything).Return(nil).Once()
	lock.On("Unlock", mock.Anything).Return(nil).Once()
	syncer.On("SyncStore", mock.Anything, storeID).Return(&integration.SyncResult{StoreID: storeID, Saved: 2}, nil)

	result, err := c.SyncStore(ctx, storeID)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)
	lock.AssertExpectations(t)
}

func TestSyncCoordinator_ManualRunReleasesOnError(t *testing.T) {
	ctx := context.Background()
	lock := new(MockSyncLock)
	syncer := new(MockStoreSyncer)
	c := NewSyncCoordinator(syncer, lock, nil)

	lock.On("Lock", mock.Anything).Return(nil).Once()
	lock.On("Unlock", mock.Anything).Return(nil).Once()
	syncer.On("SyncAllStores", mock.Anything).Return(nil, errors.New("db down"))

	_, err := c.SyncAllStores(ctx)

	assert.EqualError(t, err, "db down")
	lock.AssertExpectations(t)
}

func TestSyncCoordinator_ManualRunConflictsWhenLocked(t *testing.T) {
	ctx := context.Background()
	lock := new(MockSyncLock)
	syncer := new(MockStoreSyncer)
	c := NewSyncCoordinator(syncer, lock, nil)

	lock.On("Lock", mock.Anything).Return(integration.ErrSyncInProgress)

	_, err := c.SyncAllStores(ctx)

	assert.ErrorIs(t, err, shared.ErrStateConflict)
	lock.AssertNotCalled(t, "Unlock", mock.Anything)
	syncer.AssertNotCalled(t, "SyncAllStores", mock.Anything)
}

func TestSyncCoordinator_ScheduledRunSkipsWhenLocked(t *testing.T) {
	ctx := context.Background()
	lock := new(MockSyncLock)
	syncer := new(MockStoreSyncer)
	c := NewSyncCoordinator(syncer, lock, nil)

	lock.On("IsLocked", mock.Anything).Return(true, nil)

	result, ran, err := c.RunScheduled(ctx)

	require.NoError(t, err)
	assert.False(t, ran)
	assert.Nil(t, result)
	lock.AssertNotCalled(t, "Lock", mock.Anything)
	lock.AssertNotCalled(t, "Unlock", mock.Anything)
	syncer.AssertNotCalled(t, "SyncAllStores", mock.Anything)

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Locked)
	assert.Equal(t, int64(1), status.SkippedTicks)
}

func TestSyncCoordinator_ScheduledRunSkipsOnLostRace(t *testing.T) {
	ctx := context.Background()
	lock := new(MockSyncLock)
	syncer := new(MockStoreSyncer)
	c := NewSyncCoordinator(syncer, lock, nil)

	lock.On("IsLocked", mock.Anything).Return(false, nil)
	lock.On("Lock", mock.Anything).Return(integration.ErrSyncInProgress)

	_, ran, err := c.RunScheduled(ctx)

	require.NoError(t, err)
	assert.False(t, ran)
	syncer.AssertNotCalled(t, "SyncAllStores", mock.Anything)
}

func TestSyncCoordinator_ScheduledRunRecordsStatus(t *testing.T) {
	ctx := context.Background()
	lock := new(MockSyncLock)
	syncer := new(MockStoreSyncer)
	c := NewSyncCoordinator(syncer, lock, nil)

	all := &integration.SyncAllResult{TotalStores: 3}
	lock.On("IsLocked", mock.Anything).Return(false, nil)
	lock.On("Lock", mock.Anything).Return(nil)
	lock.On("Unlock", mock.Anything).Return(nil)
	syncer.On("SyncAllStores", mock.Anything).Return(all, nil)

	result, ran, err := c.RunScheduled(ctx)

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Same(t, all, result)

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, TriggerScheduled, status.LastTrigger)
	assert.Equal(t, int64(1), status.CompletedRuns)
	assert.NotNil(t, status.LastRunAt)
	assert.Same(t, all, status.LastResult)
}
