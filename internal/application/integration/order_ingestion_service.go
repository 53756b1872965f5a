package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/domain/catalog"
	"github.com/erp/sellerops/internal/domain/integration"
	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/domain/trade"
	"github.com/erp/sellerops/internal/infrastructure/telemetry"
)

// DefaultPageSize is the number of orders requested per marketplace page
const DefaultPageSize = 200

// ErrInvalidRemoteOrder is returned for a remote order that cannot be keyed
var ErrInvalidRemoteOrder = errors.New("integration: remote order has no shipment package id")

// OrderIngestionConfig holds ingestion settings
type OrderIngestionConfig struct {
	// PageSize is the marketplace page size
	PageSize int
	// RemoteStatus is the marketplace status pulled; empty means Created
	RemoteStatus string
}

// DefaultOrderIngestionConfig returns default configuration
func DefaultOrderIngestionConfig() OrderIngestionConfig {
	return OrderIngestionConfig{
		PageSize:     DefaultPageSize,
		RemoteStatus: integration.RemoteStatusCreated,
	}
}

// SyncRecorder receives the outcome of each store run
type SyncRecorder interface {
	RecordStoreSync(ctx context.Context, result *integration.SyncResult)
}

// OrderIngestionService pulls marketplace orders into local storage
type OrderIngestionService struct {
	storeRepo integration.StoreRepository
	orderRepo trade.OrderRepository
	gate      catalog.ExistenceGate
	client    integration.MarketplaceClient
	config    OrderIngestionConfig
	recorder  SyncRecorder
	logger    *zap.Logger
}

// NewOrderIngestionService creates a new OrderIngestionService
func NewOrderIngestionService(
	storeRepo integration.StoreRepository,
	orderRepo trade.OrderRepository,
	gate catalog.ExistenceGate,
	client integration.MarketplaceClient,
	config OrderIngestionConfig,
	logger *zap.Logger,
) *OrderIngestionService {
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if config.RemoteStatus == "" {
		config.RemoteStatus = integration.RemoteStatusCreated
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderIngestionService{
		storeRepo: storeRepo,
		orderRepo: orderRepo,
		gate:      gate,
		client:    client,
		config:    config,
		logger:    logger,
	}
}

// SetRecorder sets the recorder notified after every store run
func (s *OrderIngestionService) SetRecorder(recorder SyncRecorder) {
	s.recorder = recorder
}

// SyncStore pulls every page of remote orders for one store.
// Per-order failures are counted and skipped; a failed page fetch is
// counted and ends the run for the store. Neither is returned as an error.
func (s *OrderIngestionService) SyncStore(ctx context.Context, storeID uuid.UUID) (*integration.SyncResult, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("store", storeID)
		}
		return nil, err
	}
	if !store.IsSyncEligible() {
		return nil, shared.NewValidationError(fmt.Sprintf("store %s is inactive or has incomplete credentials", store.Name))
	}
	return s.syncStore(ctx, store), nil
}

// SyncAllStores runs SyncStore over every active store with complete
// credentials, one after another. A failing store is reported in its own
// result entry and does not stop the others.
func (s *OrderIngestionService) SyncAllStores(ctx context.Context) (*integration.SyncAllResult, error) {
	stores, err := s.storeRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]integration.Store, 0, len(stores))
	for _, st := range stores {
		if !st.IsSyncEligible() {
			s.logger.Warn("Skipping store with incomplete credentials",
				zap.String("store_id", st.ID.String()),
				zap.String("store_name", st.Name),
			)
			continue
		}
		eligible = append(eligible, st)
	}

	result := &integration.SyncAllResult{
		TotalStores: len(eligible),
		Results:     make([]integration.StoreSyncResult, 0, len(eligible)),
	}
	for i := range eligible {
		store := &eligible[i]
		entry := integration.StoreSyncResult{StoreID: store.ID, StoreName: store.Name}
		r, err := s.syncStoreIsolated(ctx, store)
		if err != nil {
			s.logger.Error("Store sync failed",
				zap.String("store_id", store.ID.String()),
				zap.Error(err),
			)
			entry.Error = err.Error()
		} else {
			entry.Result = r
		}
		result.Results = append(result.Results, entry)
	}
	return result, nil
}

func (s *OrderIngestionService) syncStoreIsolated(ctx context.Context, store *integration.Store) (result *integration.SyncResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("store sync panicked: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	telemetry.WithProfilingLabels(ctx, func(ctx context.Context) {
		result = s.syncStore(ctx, store)
	}, "operation", "store_sync", "store", store.Name)
	return result, nil
}

func (s *OrderIngestionService) syncStore(ctx context.Context, store *integration.Store) *integration.SyncResult {
	ctx, span := telemetry.StartServiceSpan(ctx, "order_ingestion", "sync_store",
		telemetry.SpanAttrStoreID, store.ID.String(),
		telemetry.SpanAttrStoreName, store.Name,
	)
	defer span.End()

	result := integration.NewSyncResult(store)
	log := s.logger.With(
		zap.String("store_id", store.ID.String()),
		zap.String("store_name", store.Name),
	)
	log.Info("Starting store order sync", zap.Int("page_size", s.config.PageSize))

	for page := 0; ; page++ {
		if err := ctx.Err(); err != nil {
			result.Errors++
			log.Warn("Store sync interrupted", zap.Int("page", page), zap.Error(err))
			break
		}

		resp, err := s.client.ListOrders(ctx, store, integration.PageRequest{
			Status: s.config.RemoteStatus,
			Page:   page,
			Size:   s.config.PageSize,
		})
		if err != nil {
			result.Errors++
			telemetry.RecordError(span, err)
			log.Error("Failed to fetch order page", zap.Int("page", page), zap.Error(err))
			break
		}
		result.PagesFetched++
		telemetry.AddEvent(span, "page_fetched",
			telemetry.SpanAttrPage, page,
			telemetry.SpanAttrOrderCount, len(resp.Content),
		)

		for i := range resp.Content {
			remote := &resp.Content[i]
			if err := s.ingestOrder(ctx, store, remote, result); err != nil {
				result.Errors++
				log.Error("Failed to ingest order",
					zap.String("external_id", remote.ExternalID()),
					zap.String("order_number", remote.OrderNumber),
					zap.Error(err),
				)
			}
		}

		if page+1 >= resp.TotalPages {
			break
		}
	}

	result.Finish()
	telemetry.SetAttributes(span,
		"sync.saved", result.Saved,
		"sync.updated", result.Updated,
		"sync.skipped", result.Skipped,
		"sync.errors", result.Errors,
	)
	log.Info("Store order sync finished",
		zap.Int("saved", result.Saved),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors),
		zap.Int("pages", result.PagesFetched),
	)
	if s.recorder != nil {
		s.recorder.RecordStoreSync(ctx, result)
	}
	return result
}

func (s *OrderIngestionService) ingestOrder(ctx context.Context, store *integration.Store, remote *integration.RemoteOrder, result *integration.SyncResult) error {
	if remote.DecodeErr != nil {
		return remote.DecodeErr
	}
	externalID := remote.ExternalID()
	if externalID == "" {
		return ErrInvalidRemoteOrder
	}

	productIDs := remote.ProductIDs()
	existing, err := s.gate.FindExisting(ctx, productIDs)
	if err != nil {
		return fmt.Errorf("product lookup: %w", err)
	}
	if missing := catalog.MissingIDs(productIDs, existing); len(missing) > 0 {
		result.AddSkipped(externalID, remote.OrderNumber, missing)
		s.logger.Debug("Skipping order with unknown products",
			zap.String("external_id", externalID),
			zap.Strings("missing_product_ids", missing),
		)
		return nil
	}

	incoming, err := BuildOrder(store, remote)
	if err != nil {
		return err
	}

	order := incoming
	current, err := s.orderRepo.FindByExternalID(ctx, externalID)
	switch {
	case err == nil:
		current.MergeRemote(incoming)
		order = current
	case !errors.Is(err, shared.ErrNotFound):
		return err
	}

	created, err := s.orderRepo.Upsert(ctx, order)
	if err != nil {
		return err
	}
	if created {
		result.Saved++
	} else {
		result.Updated++
	}
	return nil
}

// BuildOrder maps a remote shipment package to a new local order
func BuildOrder(store *integration.Store, remote *integration.RemoteOrder) (*trade.Order, error) {
	lines := make([]trade.OrderLine, 0, len(remote.Lines))
	for _, l := range remote.Lines {
		lines = append(lines, trade.OrderLine{
			ProductID:   l.Barcode,
			ProductName: l.ProductName,
			MerchantSKU: l.MerchantSKU,
			Quantity:    l.Quantity,
			UnitPrice:   l.Price,
		})
	}

	order, err := trade.NewOrder(store.ID, remote.ExternalID(), remote.OrderNumber, lines)
	if err != nil {
		return nil, err
	}
	order.Status = integration.MapRemoteStatus(remote.Status)
	order.RemoteStatus = remote.Status
	order.CustomerName = strings.TrimSpace(remote.CustomerFirstName + " " + remote.CustomerLastName)
	order.TotalPrice = remote.TotalPrice
	order.GrossAmount = remote.GrossAmount
	order.TotalDiscount = remote.TotalDiscount
	order.Currency = remote.CurrencyCode
	order.CargoTrackingNumber = remote.CargoTrackingNumber.String()
	order.CargoProviderName = remote.CargoProviderName
	order.OrderedAt = remote.OrderedAt()
	order.RawPayload = remote.Raw
	return order, nil
}
