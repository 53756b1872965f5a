package printing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/domain/fulfillment"
	"github.com/erp/sellerops/internal/domain/trade"
	"github.com/erp/sellerops/internal/infrastructure/logger"
)

// labelMarginMM is the print margin on every side of a label
const labelMarginMM = 2

// RouteLabelPrinter renders a route's labels to PDF and stores the result
type RouteLabelPrinter struct {
	template  *LabelTemplate
	renderer  PDFRenderer
	storage   LabelStorage
	paperSize PaperSize
	logger    *zap.Logger
}

// NewRouteLabelPrinter creates a label printer. An unsupported paper size
// falls back to the 100x150 thermal label.
func NewRouteLabelPrinter(tmpl *LabelTemplate, renderer PDFRenderer, storage LabelStorage, paperSize PaperSize, log *zap.Logger) *RouteLabelPrinter {
	if !paperSize.IsValid() {
		paperSize = PaperSizeLabel100x150
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RouteLabelPrinter{
		template:  tmpl,
		renderer:  renderer,
		storage:   storage,
		paperSize: paperSize,
		logger:    log,
	}
}

// PrintLabels implements fulfillment.LabelPrinter
func (p *RouteLabelPrinter) PrintLabels(ctx context.Context, route *fulfillment.Route, orders []trade.Order) (*fulfillment.LabelDocument, error) {
	if len(orders) == 0 {
		return nil, NewRenderError(ErrCodeInvalidHTML, "route has no orders to label", nil)
	}

	html, err := p.template.Render(route, orders)
	if err != nil {
		return nil, err
	}

	rendered, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:      html,
		PaperSize: p.paperSize,
		MarginMM:  labelMarginMM,
		Title:     route.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("render labels for route %s: %w", route.ID, err)
	}

	stored, err := p.storage.Store(ctx, &StoreRequest{
		RouteID: route.ID,
		PDFData: rendered.PDFData,
	})
	if err != nil {
		return nil, fmt.Errorf("store labels for route %s: %w", route.ID, err)
	}

	logger.Enrich(ctx, p.logger).Info("Route labels printed",
		zap.String("route_id", route.ID.String()),
		zap.Int("orders", len(orders)),
		zap.Int("pages", rendered.PageCount),
		zap.String("key", stored.Key),
	)

	return &fulfillment.LabelDocument{
		StorageKey: stored.Key,
		URL:        stored.URL,
		PageCount:  rendered.PageCount,
		Size:       stored.Size,
	}, nil
}

var _ fulfillment.LabelPrinter = (*RouteLabelPrinter)(nil)
