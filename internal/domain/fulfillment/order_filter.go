package fulfillment

import (
	"slices"

	"github.com/google/uuid"

	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/domain/trade"
)

// OrderFilter selects batchable orders for building a route by hand.
// ProductIDs and Quantities each match any of their values; set filters
// are combined with AND. Orders held by a route never match.
type OrderFilter struct {
	ProductIDs []string
	Quantities []int
	StoreID    *uuid.UUID
	Status     *trade.OrderStatus
}

// Validate checks the filter values
func (f OrderFilter) Validate() error {
	for _, q := range f.Quantities {
		if q <= 0 {
			return shared.NewValidationError("quantity filter values must be positive")
		}
	}
	if f.Status != nil && !f.Status.IsValid() {
		return shared.NewValidationError("unknown order status: " + string(*f.Status))
	}
	return nil
}

// Matches reports whether the order passes the filter
func (f OrderFilter) Matches(o *trade.Order) bool {
	if !o.IsBatchable() {
		return false
	}
	if f.StoreID != nil && o.StoreID != *f.StoreID {
		return false
	}
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if len(f.ProductIDs) > 0 && !slices.ContainsFunc(f.ProductIDs, o.HasProduct) {
		return false
	}
	if len(f.Quantities) > 0 && !slices.Contains(f.Quantities, o.TotalQuantity()) {
		return false
	}
	return true
}

// Apply returns the orders that match the filter, preserving order
func (f OrderFilter) Apply(orders []trade.Order) []trade.Order {
	out := make([]trade.Order, 0, len(orders))
	for i := range orders {
		if f.Matches(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	return out
}
