package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/sellerops/internal/infrastructure/csvimport"
	"github.com/erp/sellerops/internal/infrastructure/persistence"
)

func TestProductSeed_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	repo := persistence.NewGormProductRepository(tdb.DB)
	ctx := context.Background()

	load := func(input string) *csvimport.LoadResult {
		p, err := csvimport.NewParser(strings.NewReader(input), csvimport.WithDelimiter(';'))
		require.NoError(t, err)
		result, err := csvimport.NewProductLoader(repo).Load(ctx, p)
		require.NoError(t, err)
		return result
	}

	first := load("barcode;title;merchant_sku\n869001;Mug;M-1\n869002;Plate;P-1\n")
	assert.Equal(t, 2, first.Created)

	second := load("barcode;title\n869001;Large mug\n869003;Bowl\n")
	assert.Equal(t, 1, second.Created)
	assert.Equal(t, 1, second.Updated)

	mug, err := repo.FindByBarcode(ctx, "869001")
	require.NoError(t, err)
	assert.Equal(t, "Large mug", mug.Title)
	assert.Equal(t, "M-1", mug.MerchantSKU)

	existing, err := repo.FindExisting(ctx, []string{"869001", "869002", "869003", "869004"})
	require.NoError(t, err)
	assert.Len(t, existing, 3)
}
