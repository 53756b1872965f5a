package fulfillment

import (
	"context"

	"github.com/erp/sellerops/internal/domain/trade"
)

// LabelDocument describes the printable shipping labels produced for a route
type LabelDocument struct {
	StorageKey string
	URL        string
	PageCount  int
	Size       int64
}

// LabelPrinter produces shipping labels for the orders of a route
type LabelPrinter interface {
	PrintLabels(ctx context.Context, route *Route, orders []trade.Order) (*LabelDocument, error)
}
