package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/sellerops/internal/domain/fulfillment"
	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/domain/trade"
	"github.com/erp/sellerops/internal/infrastructure/persistence/models"
)

// GormRouteRepository implements fulfillment.RouteRepository using GORM.
// Route and member order writes share one transaction.
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GormRouteRepository
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func linksByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByID finds a route by ID with its member order ids
func (r *GormRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.Route, error) {
	var model models.RouteModel
	if err := r.db.WithContext(ctx).
		Preload("Orders", linksByPosition).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists routes newest first, optionally restricted to statuses
func (r *GormRouteRepository) FindAll(ctx context.Context, statuses []fulfillment.RouteStatus) ([]fulfillment.Route, error) {
	query := r.db.WithContext(ctx).Preload("Orders", linksByPosition)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var rows []models.RouteModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	routes := make([]fulfillment.Route, len(rows))
	for i := range rows {
		routes[i] = *rows[i].ToDomain()
	}
	return routes, nil
}

// Create inserts the route, its order links and the changed member orders
func (r *GormRouteRepository) Create(ctx context.Context, route *fulfillment.Route, orders []*trade.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.RouteModelFromDomain(route)
		if err := tx.Omit("Orders").Create(model).Error; err != nil {
			return err
		}
		if len(model.Orders) > 0 {
			if err := tx.Create(&model.Orders).Error; err != nil {
				return err
			}
		}
		return updateOrderStatuses(tx, orders)
	})
	if err != nil {
		return err
	}
	bumpVersions(orders)
	return nil
}

// Save updates the route, conditional on its version, and the changed member orders
func (r *GormRouteRepository) Save(ctx context.Context, route *fulfillment.Route, orders []*trade.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.RouteModel{}).
			Where("id = ? AND version = ?", route.ID, route.Version).
			Updates(map[string]any{
				"name":             route.Name,
				"description":      route.Description,
				"status":           route.Status,
				"label_printed_at": route.LabelPrintedAt,
				"label_url":        route.LabelURL,
				"cancelled_at":     route.CancelledAt,
				"version":          route.Version + 1,
				"updated_at":       route.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewStateConflictError(fmt.Sprintf(
				"route %s was modified concurrently (version %d is stale)", route.ID, route.Version))
		}
		return updateOrderStatuses(tx, orders)
	})
	if err != nil {
		return err
	}
	route.IncrementVersion()
	bumpVersions(orders)
	return nil
}

func updateOrderStatuses(tx *gorm.DB, orders []*trade.Order) error {
	for _, o := range orders {
		if err := updateOrderStatus(tx, o); err != nil {
			return err
		}
	}
	return nil
}

func bumpVersions(orders []*trade.Order) {
	for _, o := range orders {
		o.IncrementVersion()
	}
}

var _ fulfillment.RouteRepository = (*GormRouteRepository)(nil)
