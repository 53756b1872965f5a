package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/domain/trade"
	"github.com/erp/sellerops/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func linesByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByID finds an order by its ID, including its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", linesByPosition).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds orders by IDs, returned in the order the ids were given
func (r *GormOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.Order, error) {
	if len(ids) == 0 {
		return []trade.Order{}, nil
	}
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", linesByPosition).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.OrderModel, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	orders := make([]trade.Order, 0, len(rows))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			orders = append(orders, *m.ToDomain())
			delete(byID, id)
		}
	}
	return orders, nil
}

// FindByExternalID finds an order by its shipment-package id
func (r *GormOrderRepository) FindByExternalID(ctx context.Context, externalID string) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", linesByPosition).
		First(&model, "external_id = ?", externalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns orders matching the filter, oldest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter trade.OrderListFilter) ([]trade.Order, error) {
	query := r.db.WithContext(ctx).Preload("Lines", linesByPosition)
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.BatchableOnly {
		query = query.Where("status NOT IN ?", []trade.OrderStatus{trade.OrderStatusCollecting, trade.OrderStatusPacked})
	}

	var rows []models.OrderModel
	if err := query.Order("ordered_at ASC").Order("external_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]trade.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Upsert inserts the order or, when its external id is already stored,
// overwrites the stored row and replaces its lines. The update is
// conditional on the version the order was loaded with.
func (r *GormOrderRepository) Upsert(ctx context.Context, order *trade.Order) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.OrderModel
		err := tx.Select("id", "version").
			Where("external_id = ?", order.ExternalID).
			Take(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			return insertOrder(tx, order)
		}
		if err != nil {
			return err
		}
		if current.ID != order.ID {
			return shared.NewStateConflictError(fmt.Sprintf(
				"order %s was stored concurrently", order.ExternalID))
		}
		return updateOrder(tx, order)
	})
	if err != nil {
		return false, err
	}
	if !created {
		order.IncrementVersion()
	}
	return created, nil
}

func insertOrder(tx *gorm.DB, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	if err := tx.Omit("Lines").Create(model).Error; err != nil {
		return err
	}
	if len(model.Lines) > 0 {
		if err := tx.Create(&model.Lines).Error; err != nil {
			return err
		}
	}
	return nil
}

func updateOrder(tx *gorm.DB, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	result := tx.Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]any{
			"store_id":              model.StoreID,
			"order_number":          model.OrderNumber,
			"status":                model.Status,
			"remote_status":         model.RemoteStatus,
			"customer_name":         model.CustomerName,
			"total_price":           model.TotalPrice,
			"gross_amount":          model.GrossAmount,
			"total_discount":        model.TotalDiscount,
			"currency":              model.Currency,
			"cargo_tracking_number": model.CargoTrackingNumber,
			"cargo_provider_name":   model.CargoProviderName,
			"ordered_at":            model.OrderedAt,
			"last_synced_at":        model.LastSyncedAt,
			"raw_payload":           model.RawPayload,
			"version":               order.Version + 1,
			"updated_at":            order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return concurrentOrderError(order)
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderLineModel{}).Error; err != nil {
		return err
	}
	if len(model.Lines) > 0 {
		if err := tx.Create(&model.Lines).Error; err != nil {
			return err
		}
	}
	return nil
}

// updateOrderStatus writes a route-driven status change, conditional on version
func updateOrderStatus(tx *gorm.DB, order *trade.Order) error {
	result := tx.Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]any{
			"status":     order.Status,
			"version":    order.Version + 1,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return concurrentOrderError(order)
	}
	return nil
}

func concurrentOrderError(order *trade.Order) error {
	return shared.NewStateConflictError(fmt.Sprintf(
		"order %s was modified concurrently (version %d is stale)", order.OrderNumber, order.Version))
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
