package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/erp/sellerops/internal/domain/catalog"
	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/domain/trade"
	"github.com/erp/sellerops/internal/infrastructure/persistence/models"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// A single connection keeps every statement on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func seedStore(t *testing.T, db *gorm.DB, name string, active bool) *integration.Store {
	t.Helper()
	store := &integration.Store{
		Name: name,
		Credentials: integration.Credentials{
			SellerID:  "100200",
			APIKey:    "key",
			APISecret: "secret",
		},
		IsActive: active,
	}
	store.ID = uuid.New()
	store.CreatedAt = time.Now()
	store.UpdatedAt = store.CreatedAt
	require.NoError(t, NewGormStoreRepository(db).Save(context.Background(), store))
	return store
}

func seedProduct(t *testing.T, db *gorm.DB, barcode string) {
	t.Helper()
	p, err := catalog.NewProduct(barcode, "Product "+barcode)
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
}

func newTestOrder(t *testing.T, storeID uuid.UUID, externalID string, orderedAt time.Time, lines ...trade.OrderLine) *trade.Order {
	t.Helper()
	if len(lines) == 0 {
		lines = []trade.OrderLine{{ProductID: "8690000000001", ProductName: "Mug", Quantity: 1, UnitPrice: decimal.NewFromInt(50)}}
	}
	order, err := trade.NewOrder(storeID, externalID, "ORD-"+externalID, lines)
	require.NoError(t, err)
	order.OrderedAt = orderedAt
	order.TotalPrice = decimal.NewFromInt(50)
	order.RemoteStatus = "Created"
	return order
}

func seedOrder(t *testing.T, db *gorm.DB, order *trade.Order) *trade.Order {
	t.Helper()
	created, err := NewGormOrderRepository(db).Upsert(context.Background(), order)
	require.NoError(t, err)
	require.True(t, created)
	return order
}
