package printing

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/sellerops/internal/domain/trade"
)

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RenderResult), args.Error(1)
}

func (m *MockRenderer) Close() error {
	return nil
}

type MockLabelStorage struct {
	mock.Mock
}

func (m *MockLabelStorage) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoreResult), args.Error(1)
}

func (m *MockLabelStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	return nil, args.Error(1)
}

func (m *MockLabelStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func TestRouteLabelPrinter_PrintLabels(t *testing.T) {
	ctx := context.Background()
	orders := []trade.Order{
		testOrder(t, "1", "aras", trade.OrderLine{ProductID: "A", Quantity: 1}),
		testOrder(t, "2", "aras", trade.OrderLine{ProductID: "A", Quantity: 1}),
	}
	route := testRoute(t, orders)

	renderer := new(MockRenderer)
	storage := new(MockLabelStorage)
	renderer.On("Render", ctx, mock.MatchedBy(func(req *RenderRequest) bool {
		return req.PaperSize == PaperSizeLabel100x100 &&
			req.MarginMM == labelMarginMM &&
			req.Title == route.Name &&
			strings.Count(req.HTML, `class="label"`) == 2
	})).Return(&RenderResult{PDFData: []byte("%PDF"), PageCount: 2}, nil)
	storage.On("Store", ctx, mock.MatchedBy(func(req *StoreRequest) bool {
		return req.RouteID == route.ID && string(req.PDFData) == "%PDF"
	})).Return(&StoreResult{Key: "2026/05/r.pdf", URL: "/api/v1/labels/2026/05/r.pdf", Size: 4}, nil)

	printer := NewRouteLabelPrinter(NewLabelTemplate(), renderer, storage, PaperSizeLabel100x100, nil)
	doc, err := printer.PrintLabels(ctx, route, orders)
	require.NoError(t, err)

	assert.Equal(t, "2026/05/r.pdf", doc.StorageKey)
	assert.Equal(t, "/api/v1/labels/2026/05/r.pdf", doc.URL)
	assert.Equal(t, 2, doc.PageCount)
	assert.Equal(t, int64(4), doc.Size)
	renderer.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestRouteLabelPrinter_RenderFailureStoresNothing(t *testing.T) {
	ctx := context.Background()
	orders := []trade.Order{testOrder(t, "1", "aras", trade.OrderLine{ProductID: "A", Quantity: 1})}
	route := testRoute(t, orders)

	renderer := new(MockRenderer)
	storage := new(MockLabelStorage)
	renderer.On("Render", ctx, mock.Anything).Return(nil, NewRenderError(ErrCodeRenderTimeout, "timed out", nil))

	printer := NewRouteLabelPrinter(NewLabelTemplate(), renderer, storage, PaperSizeA4, nil)
	_, err := printer.PrintLabels(ctx, route, orders)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeRenderTimeout, renderErr.Code)
	storage.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestRouteLabelPrinter_StorageFailure(t *testing.T) {
	ctx := context.Background()
	orders := []trade.Order{testOrder(t, "1", "aras", trade.OrderLine{ProductID: "A", Quantity: 1})}
	route := testRoute(t, orders)

	renderer := new(MockRenderer)
	storage := new(MockLabelStorage)
	renderer.On("Render", ctx, mock.Anything).Return(&RenderResult{PDFData: []byte("%PDF"), PageCount: 1}, nil)
	storage.On("Store", ctx, mock.Anything).Return(nil, errors.New("disk full"))

	printer := NewRouteLabelPrinter(NewLabelTemplate(), renderer, storage, PaperSizeA4, nil)
	_, err := printer.PrintLabels(ctx, route, orders)
	assert.ErrorContains(t, err, "disk full")
}

func TestRouteLabelPrinter_NoOrders(t *testing.T) {
	orders := []trade.Order{testOrder(t, "1", "aras", trade.OrderLine{ProductID: "A", Quantity: 1})}
	printer := NewRouteLabelPrinter(NewLabelTemplate(), new(MockRenderer), new(MockLabelStorage), "bogus", nil)
	assert.Equal(t, PaperSizeLabel100x150, printer.paperSize)

	_, err := printer.PrintLabels(context.Background(), testRoute(t, orders), nil)
	assert.Error(t, err)
}

func TestPaperSize(t *testing.T) {
	size, ok := ParsePaperSize("label_100x150")
	require.True(t, ok)
	assert.Equal(t, PaperSizeLabel100x150, size)
	assert.True(t, size.IsLabel())

	w, h := PaperSizeA4.Dimensions()
	assert.Equal(t, 210, w)
	assert.Equal(t, 297, h)
	assert.False(t, PaperSizeA4.IsLabel())

	_, ok = ParsePaperSize("letter")
	assert.False(t, ok)
}

func TestPageGeometry(t *testing.T) {
	g := pageGeometry(&RenderRequest{PaperSize: PaperSizeLabel100x150, MarginMM: 2})
	assert.InDelta(t, 3.937, g.width, 0.001)
	assert.InDelta(t, 5.906, g.height, 0.001)
	assert.InDelta(t, 0.0787, g.margin, 0.0001)
}

func TestWrapDocument(t *testing.T) {
	full := "<!DOCTYPE html><html><body>x</body></html>"
	assert.Equal(t, full, wrapDocument(&RenderRequest{HTML: full}))

	wrapped := wrapDocument(&RenderRequest{HTML: "<p>x</p>", Title: "A & B"})
	assert.Contains(t, wrapped, "<title>A &amp; B</title>")
	assert.Contains(t, wrapped, "<body><p>x</p></body>")
}

func TestChromedpRenderer_RejectsBadRequests(t *testing.T) {
	r, err := NewChromedpRenderer(nil)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Render(context.Background(), &RenderRequest{HTML: " ", PaperSize: PaperSizeA4})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)

	_, err = r.Render(context.Background(), &RenderRequest{HTML: "<p>x</p>", PaperSize: "B5"})
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidPaperSize, renderErr.Code)
}

func TestCountPages(t *testing.T) {
	pdf := []byte("<< /Type /Pages /Kids [3 0 R 4 0 R] >> << /Type /Page >> << /Type /Page >>")
	assert.Equal(t, 2, countPages(pdf))
	assert.Equal(t, 1, countPages([]byte("garbage")))
}
