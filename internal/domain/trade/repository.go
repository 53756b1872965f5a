package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderListFilter narrows order queries at the storage level
type OrderListFilter struct {
	StoreID       *uuid.UUID
	Statuses      []OrderStatus
	BatchableOnly bool
}

// OrderRepository defines the interface for marketplace order persistence
type OrderRepository interface {
	// FindByID finds an order by ID, including its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDs finds orders by IDs; ids that do not exist are simply absent
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Order, error)

	// FindByExternalID finds an order by its shipment-package id
	FindByExternalID(ctx context.Context, externalID string) (*Order, error)

	// FindAll returns orders matching the filter, oldest first
	FindAll(ctx context.Context, filter OrderListFilter) ([]Order, error)

	// Upsert inserts or updates the order keyed by ExternalID.
	// Returns true when a new row was created.
	Upsert(ctx context.Context, order *Order) (bool, error)
}
