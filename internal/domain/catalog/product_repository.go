package catalog

import (
	"context"
)

// ExistenceGate answers which product identifiers are known locally.
// Orders that reference an unknown product are not ingested.
type ExistenceGate interface {
	// FindExisting returns the subset of ids that exist, as a set
	FindExisting(ctx context.Context, ids []string) (map[string]bool, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	ExistenceGate

	// FindByBarcode finds a product by its barcode
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// MissingIDs returns the ids not present in the existing set, preserving input order
func MissingIDs(ids []string, existing map[string]bool) []string {
	var missing []string
	for _, id := range ids {
		if !existing[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
