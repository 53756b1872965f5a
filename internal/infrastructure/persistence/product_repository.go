package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/erp/sellerops/internal/domain/catalog"
	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/infrastructure/persistence/models"
)

// existenceBatchSize bounds the IN list of a single existence query
const existenceBatchSize = 500

// GormProductRepository implements catalog.ProductRepository using GORM.
// It is also the product existence gate used by order ingestion.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindExisting returns the subset of barcodes that exist locally
func (r *GormProductRepository) FindExisting(ctx context.Context, ids []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(ids))
	for start := 0; start < len(ids); start += existenceBatchSize {
		end := min(start+existenceBatchSize, len(ids))

		var found []string
		if err := r.db.WithContext(ctx).
			Model(&models.ProductModel{}).
			Where("barcode IN ?", ids[start:end]).
			Pluck("barcode", &found).Error; err != nil {
			return nil, err
		}
		for _, b := range found {
			existing[b] = true
		}
	}
	return existing, nil
}

// FindByBarcode finds a product by its barcode
func (r *GormProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(models.ProductModelFromDomain(product)).Error
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
