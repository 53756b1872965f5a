package integration

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/domain/trade"
)

// MockStoreRepository is a mock implementation of StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Store), args.Error(1)
}

func (m *MockStoreRepository) FindActive(ctx context.Context) ([]integration.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.Store), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, store *integration.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

// MockMarketplaceClient is a mock implementation of MarketplaceClient
type MockMarketplaceClient struct {
	mock.Mock
}

func (m *MockMarketplaceClient) ListOrders(ctx context.Context, store *integration.Store, req integration.PageRequest) (*integration.OrderPage, error) {
	args := m.Called(ctx, store, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.OrderPage), args.Error(1)
}

func (m *MockMarketplaceClient) ListClaims(ctx context.Context, store *integration.Store, page int) (*integration.ClaimPage, error) {
	args := m.Called(ctx, store, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ClaimPage), args.Error(1)
}

func (m *MockMarketplaceClient) ListQuestions(ctx context.Context, store *integration.Store, page int) (*integration.QuestionPage, error) {
	args := m.Called(ctx, store, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.QuestionPage), args.Error(1)
}

func (m *MockMarketplaceClient) AnswerQuestion(ctx context.Context, store *integration.Store, questionID int64, text string) error {
	args := m.Called(ctx, store, questionID, text)
	return args.Error(0)
}

// staticGate reports a fixed set of known product ids
type staticGate struct {
	known map[string]bool
	err   error
}

func (g *staticGate) FindExisting(_ context.Context, ids []string) (map[string]bool, error) {
	if g.err != nil {
		return nil, g.err
	}
	out := make(map[string]bool)
	for _, id := range ids {
		if g.known[id] {
			out[id] = true
		}
	}
	return out, nil
}

// memoryOrderRepo is an in-memory OrderRepository keyed by external id
type memoryOrderRepo struct {
	mu        sync.Mutex
	byExtID   map[string]*trade.Order
	upsertErr map[string]error
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{
		byExtID:   make(map[string]*trade.Order),
		upsertErr: make(map[string]error),
	}
}

func (r *memoryOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byExtID {
		if o.ID == id {
			c := *o
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryOrderRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.Order, error) {
	var out []trade.Order
	for _, id := range ids {
		if o, err := r.FindByID(ctx, id); err == nil {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memoryOrderRepo) FindByExternalID(_ context.Context, externalID string) (*trade.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byExtID[externalID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	c := *o
	return &c, nil
}

func (r *memoryOrderRepo) FindAll(_ context.Context, _ trade.OrderListFilter) ([]trade.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]trade.Order, 0, len(r.byExtID))
	for _, o := range r.byExtID {
		out = append(out, *o)
	}
	return out, nil
}

func (r *memoryOrderRepo) Upsert(_ context.Context, order *trade.Order) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.upsertErr[order.ExternalID]; err != nil {
		return false, err
	}
	_, exists := r.byExtID[order.ExternalID]
	c := *order
	r.byExtID[order.ExternalID] = &c
	return !exists, nil
}

func (r *memoryOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byExtID)
}

// MockSyncLock is a mock implementation of SyncLock
type MockSyncLock struct {
	mock.Mock
}

func (m *MockSyncLock) Lock(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSyncLock) Unlock(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSyncLock) IsLocked(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockStoreSyncer is a mock implementation of StoreSyncer
type MockStoreSyncer struct {
	mock.Mock
}

func (m *MockStoreSyncer) SyncStore(ctx context.Context, storeID uuid.UUID) (*integration.SyncResult, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.SyncResult), args.Error(1)
}

func (m *MockStoreSyncer) SyncAllStores(ctx context.Context) (*integration.SyncAllResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.SyncAllResult), args.Error(1)
}
