package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/domain/trade"
)

func TestGormOrderRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	store := seedStore(t, db, "Main", true)

	t.Run("inserts new order with lines and raw payload", func(t *testing.T) {
		order := newTestOrder(t, store.ID, "PKG-1", time.Now(),
			trade.OrderLine{ProductID: "A", Quantity: 2},
			trade.OrderLine{ProductID: "B", Quantity: 1},
		)
		order.RawPayload = []byte(`{"shipmentPackageId":1}`)

		created, err := repo.Upsert(ctx, order)
		require.NoError(t, err)
		assert.True(t, created)

		found, err := repo.FindByExternalID(ctx, "PKG-1")
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
		assert.Equal(t, 1, found.Version)
		require.Len(t, found.Lines, 2)
		assert.Equal(t, "A", found.Lines[0].ProductID)
		assert.Equal(t, 3, found.TotalQuantity())
		assert.JSONEq(t, `{"shipmentPackageId":1}`, string(found.RawPayload))
	})

	t.Run("updates existing order and replaces lines", func(t *testing.T) {
		existing, err := repo.FindByExternalID(ctx, "PKG-1")
		require.NoError(t, err)

		incoming := newTestOrder(t, store.ID, "PKG-1", time.Now(), trade.OrderLine{ProductID: "C", Quantity: 5})
		incoming.Status = trade.OrderStatusShipped
		existing.MergeRemote(incoming)

		created, err := repo.Upsert(ctx, existing)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, 2, existing.Version)

		found, err := repo.FindByExternalID(ctx, "PKG-1")
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusShipped, found.Status)
		assert.Equal(t, 2, found.Version)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, "C", found.Lines[0].ProductID)

		var count int64
		require.NoError(t, db.Table("orders").Where("external_id = ?", "PKG-1").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("stale version is a state conflict", func(t *testing.T) {
		stale, err := repo.FindByExternalID(ctx, "PKG-1")
		require.NoError(t, err)
		fresh, err := repo.FindByExternalID(ctx, "PKG-1")
		require.NoError(t, err)

		_, err = repo.Upsert(ctx, fresh)
		require.NoError(t, err)

		_, err = repo.Upsert(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrStateConflict)
	})

	t.Run("second insert of same external id is a state conflict", func(t *testing.T) {
		dup := newTestOrder(t, store.ID, "PKG-1", time.Now())
		_, err := repo.Upsert(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrStateConflict)
	})
}

func TestGormOrderRepository_FindByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	store := seedStore(t, db, "Main", true)

	first := seedOrder(t, db, newTestOrder(t, store.ID, "PKG-1", time.Now()))
	second := seedOrder(t, db, newTestOrder(t, store.ID, "PKG-2", time.Now()))

	orders, err := repo.FindByIDs(context.Background(), []uuid.UUID{second.ID, uuid.New(), first.ID})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	empty, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormOrderRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	storeA := seedStore(t, db, "A", true)
	storeB := seedStore(t, db, "B", true)
	base := time.Now().Add(-time.Hour)

	pending := seedOrder(t, db, newTestOrder(t, storeA.ID, "PKG-1", base.Add(2*time.Minute)))
	collecting := newTestOrder(t, storeA.ID, "PKG-2", base.Add(time.Minute))
	collecting.Status = trade.OrderStatusCollecting
	seedOrder(t, db, collecting)
	shipped := newTestOrder(t, storeB.ID, "PKG-3", base)
	shipped.Status = trade.OrderStatusShipped
	seedOrder(t, db, shipped)

	t.Run("batchable excludes claimed orders, oldest first", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, trade.OrderListFilter{BatchableOnly: true})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "PKG-3", orders[0].ExternalID)
		assert.Equal(t, pending.ID, orders[1].ID)
	})

	t.Run("store and status filters", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, trade.OrderListFilter{
			StoreID:  &storeA.ID,
			Statuses: []trade.OrderStatus{trade.OrderStatusCollecting},
		})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "PKG-2", orders[0].ExternalID)
	})
}

func TestGormOrderRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
