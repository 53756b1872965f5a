package handler

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	fulfillmentapp "github.com/erp/sellerops/internal/application/fulfillment"
	integrationapp "github.com/erp/sellerops/internal/application/integration"
	"github.com/erp/sellerops/internal/domain/fulfillment"
	"github.com/erp/sellerops/internal/domain/integration"
)

// MockSyncService implements SyncService for testing
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) SyncStore(ctx context.Context, storeID uuid.UUID) (*integration.SyncResult, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.SyncResult), args.Error(1)
}

func (m *MockSyncService) SyncAllStores(ctx context.Context) (*integration.SyncAllResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.SyncAllResult), args.Error(1)
}

func (m *MockSyncService) Status(ctx context.Context) (*integrationapp.SyncStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integrationapp.SyncStatusResponse), args.Error(1)
}

// MockRouteService implements RouteService for testing
type MockRouteService struct {
	mock.Mock
}

func (m *MockRouteService) route(args mock.Arguments) (*fulfillmentapp.RouteResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillmentapp.RouteResponse), args.Error(1)
}

func (m *MockRouteService) Create(ctx context.Context, req fulfillmentapp.CreateRouteRequest) (*fulfillmentapp.RouteResponse, error) {
	return m.route(m.Called(ctx, req))
}

func (m *MockRouteService) MarkReady(ctx context.Context, routeID uuid.UUID) (*fulfillmentapp.RouteResponse, error) {
	return m.route(m.Called(ctx, routeID))
}

func (m *MockRouteService) Finalize(ctx context.Context, routeID uuid.UUID) (*fulfillmentapp.RouteResponse, error) {
	return m.route(m.Called(ctx, routeID))
}

func (m *MockRouteService) Cancel(ctx context.Context, routeID uuid.UUID) (*fulfillmentapp.RouteResponse, error) {
	return m.route(m.Called(ctx, routeID))
}

func (m *MockRouteService) Get(ctx context.Context, routeID uuid.UUID) (*fulfillmentapp.RouteResponse, error) {
	return m.route(m.Called(ctx, routeID))
}

func (m *MockRouteService) List(ctx context.Context, statuses []fulfillment.RouteStatus) ([]fulfillmentapp.RouteResponse, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fulfillmentapp.RouteResponse), args.Error(1)
}

// MockSuggestionService implements SuggestionService for testing
type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) SuggestRoutes(ctx context.Context, query fulfillmentapp.OrderQuery) ([]fulfillmentapp.SuggestionResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fulfillmentapp.SuggestionResponse), args.Error(1)
}

func (m *MockSuggestionService) FilterOrders(ctx context.Context, query fulfillmentapp.OrderQuery) ([]fulfillmentapp.OrderResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fulfillmentapp.OrderResponse), args.Error(1)
}

// MockStoreInboxService implements StoreInboxService for testing
type MockStoreInboxService struct {
	mock.Mock
}

func (m *MockStoreInboxService) ListStores(ctx context.Context) ([]integrationapp.StoreResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integrationapp.StoreResponse), args.Error(1)
}

func (m *MockStoreInboxService) ListClaims(ctx context.Context, storeID uuid.UUID, page int) (*integration.ClaimPage, error) {
	args := m.Called(ctx, storeID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ClaimPage), args.Error(1)
}

func (m *MockStoreInboxService) ListQuestions(ctx context.Context, storeID uuid.UUID, page int) (*integration.QuestionPage, error) {
	args := m.Called(ctx, storeID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.QuestionPage), args.Error(1)
}

func (m *MockStoreInboxService) AnswerQuestion(ctx context.Context, storeID uuid.UUID, questionID int64, req integrationapp.AnswerQuestionRequest) error {
	return m.Called(ctx, storeID, questionID, req).Error(0)
}

// memLabels is an in-memory LabelSource
type memLabels map[string][]byte

func (m memLabels) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := m[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
