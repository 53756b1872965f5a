package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/sellerops/internal/domain/catalog"
	"github.com/erp/sellerops/internal/domain/shared"
)

func TestGormProductRepository_FindExisting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "A")
	seedProduct(t, db, "C")

	t.Run("returns only known barcodes", func(t *testing.T) {
		existing, err := repo.FindExisting(ctx, []string{"A", "B", "C"})
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"A": true, "C": true}, existing)
		assert.Equal(t, []string{"B"}, catalog.MissingIDs([]string{"A", "B", "C"}, existing))
	})

	t.Run("empty input needs no query", func(t *testing.T) {
		existing, err := repo.FindExisting(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, existing)
	})

	t.Run("large input is batched", func(t *testing.T) {
		ids := make([]string, 0, existenceBatchSize+10)
		for i := 0; i < existenceBatchSize+9; i++ {
			ids = append(ids, fmt.Sprintf("missing-%d", i))
		}
		ids = append(ids, "C")

		existing, err := repo.FindExisting(ctx, ids)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"C": true}, existing)
	})
}

func TestGormProductRepository_FindByBarcode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "8690000000001")

	p, err := repo.FindByBarcode(ctx, "8690000000001")
	require.NoError(t, err)
	assert.Equal(t, "Product 8690000000001", p.Title)

	_, err = repo.FindByBarcode(ctx, "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
