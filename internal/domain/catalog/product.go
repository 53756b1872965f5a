package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/erp/sellerops/internal/domain/shared"
)

// Product is a locally known sellable item, identified on the marketplace by its barcode.
// Products are maintained elsewhere; this context only reads them.
type Product struct {
	shared.BaseEntity
	StoreID     *uuid.UUID
	Barcode     string
	Title       string
	MerchantSKU string
}

// NewProduct creates a product with the given barcode
func NewProduct(barcode, title string) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, shared.NewValidationError("product barcode cannot be empty")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Barcode:    barcode,
		Title:      title,
	}, nil
}
