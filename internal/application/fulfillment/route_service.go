package fulfillment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/sellerops/internal/domain/fulfillment"
	"github.com/erp/sellerops/internal/domain/shared"
	"github.com/erp/sellerops/internal/domain/trade"
	"github.com/erp/sellerops/internal/infrastructure/telemetry"
)

// RouteService handles the route lifecycle: create, ready, finalize, cancel
type RouteService struct {
	routeRepo fulfillment.RouteRepository
	orderRepo trade.OrderRepository
	labels    fulfillment.LabelPrinter
	logger    *zap.Logger
}

// NewRouteService creates a new RouteService
func NewRouteService(
	routeRepo fulfillment.RouteRepository,
	orderRepo trade.OrderRepository,
	labels fulfillment.LabelPrinter,
	logger *zap.Logger,
) *RouteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouteService{
		routeRepo: routeRepo,
		orderRepo: orderRepo,
		labels:    labels,
		logger:    logger,
	}
}

// Create creates a COLLECTING route over the requested orders. Every order
// must exist, and any supplied version must still be current; otherwise
// nothing is written. Member orders move to COLLECTING unless a route
// already holds them.
func (s *RouteService) Create(ctx context.Context, req CreateRouteRequest) (*RouteResponse, error) {
	route, err := fulfillment.NewRoute(req.Name, req.Description, req.OrderIDs())
	if err != nil {
		return nil, err
	}

	orders, err := s.loadOrders(ctx, route.OrderIDs)
	if err != nil {
		return nil, err
	}

	for _, in := range req.Orders {
		if in.Version == nil {
			continue
		}
		o := orders[in.OrderID]
		if o.Version != *in.Version {
			return nil, shared.NewStateConflictError(fmt.Sprintf(
				"order %s was modified (expected version %d, current %d)", o.OrderNumber, *in.Version, o.Version))
		}
	}

	changed := make([]*trade.Order, 0, len(orders))
	for _, id := range route.OrderIDs {
		o := orders[id]
		if o.ClaimForRoute() {
			changed = append(changed, o)
		}
	}

	if err := s.routeRepo.Create(ctx, route, changed); err != nil {
		return nil, err
	}

	s.logger.Info("Route created",
		zap.String("route_id", route.ID.String()),
		zap.String("route_name", route.Name),
		zap.Int("order_count", route.OrderCount()),
		zap.Int("claimed_orders", len(changed)),
	)
	response := ToRouteResponse(route)
	return &response, nil
}

// MarkReady moves a collecting route to READY
func (s *RouteService) MarkReady(ctx context.Context, routeID uuid.UUID) (*RouteResponse, error) {
	route, err := s.findRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if err := route.MarkReady(); err != nil {
		return nil, err
	}
	if err := s.routeRepo.Save(ctx, route, nil); err != nil {
		return nil, err
	}
	response := ToRouteResponse(route)
	return &response, nil
}

// Finalize prints the route labels, then completes the route and packs its
// orders. A completed route is rejected before anything is printed; a label
// failure leaves the route and its orders untouched.
func (s *RouteService) Finalize(ctx context.Context, routeID uuid.UUID) (*RouteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "route", "finalize", telemetry.SpanAttrRouteID, routeID.String())
	defer span.End()

	route, err := s.findRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if err := route.EnsureFinalizable(); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindByIDs(ctx, route.OrderIDs)
	if err != nil {
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrOrderCount, len(orders))
	label, err := s.labels.PrintLabels(ctx, route, orders)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Label printing failed",
			zap.String("route_id", route.ID.String()),
			zap.Error(err),
		)
		return nil, shared.NewExternalAPIError("label printing failed", err)
	}

	if err := route.Complete(label); err != nil {
		return nil, err
	}
	changed := make([]*trade.Order, 0, len(orders))
	for i := range orders {
		orders[i].MarkPacked()
		changed = append(changed, &orders[i])
	}

	if err := s.routeRepo.Save(ctx, route, changed); err != nil {
		return nil, err
	}

	s.logger.Info("Route finalized",
		zap.String("route_id", route.ID.String()),
		zap.Int("packed_orders", len(changed)),
		zap.String("label_url", route.LabelURL),
	)
	response := ToRouteResponse(route)
	response.Orders = ToOrderResponses(orders)
	return &response, nil
}

// Cancel cancels a route. Only members still COLLECTING go back to PENDING;
// the route itself is kept as CANCELLED.
func (s *RouteService) Cancel(ctx context.Context, routeID uuid.UUID) (*RouteResponse, error) {
	route, err := s.findRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if err := route.Cancel(); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindByIDs(ctx, route.OrderIDs)
	if err != nil {
		return nil, err
	}
	changed := make([]*trade.Order, 0, len(orders))
	for i := range orders {
		if orders[i].ReleaseFromRoute() {
			changed = append(changed, &orders[i])
		}
	}

	if err := s.routeRepo.Save(ctx, route, changed); err != nil {
		return nil, err
	}

	s.logger.Info("Route cancelled",
		zap.String("route_id", route.ID.String()),
		zap.Int("released_orders", len(changed)),
	)
	response := ToRouteResponse(route)
	return &response, nil
}

// List lists routes, optionally restricted to a set of statuses
func (s *RouteService) List(ctx context.Context, statuses []fulfillment.RouteStatus) ([]RouteResponse, error) {
	for _, st := range statuses {
		if !st.IsValid() {
			return nil, shared.NewValidationError("unknown route status: " + string(st))
		}
	}
	routes, err := s.routeRepo.FindAll(ctx, statuses)
	if err != nil {
		return nil, err
	}
	out := make([]RouteResponse, len(routes))
	for i := range routes {
		out[i] = ToRouteResponse(&routes[i])
	}
	return out, nil
}

// Get returns a route with its orders
func (s *RouteService) Get(ctx context.Context, routeID uuid.UUID) (*RouteResponse, error) {
	route, err := s.findRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindByIDs(ctx, route.OrderIDs)
	if err != nil {
		return nil, err
	}
	response := ToRouteResponse(route)
	response.Orders = ToOrderResponses(orders)
	return &response, nil
}

func (s *RouteService) findRoute(ctx context.Context, id uuid.UUID) (*fulfillment.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("route", id)
		}
		return nil, err
	}
	return route, nil
}

// loadOrders resolves every id or fails listing the ids that do not exist
func (s *RouteService) loadOrders(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*trade.Order, error) {
	found, err := s.orderRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*trade.Order, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, shared.NewValidationError(shared.MissingIDsMessage("orders not found", missing))
	}
	return byID, nil
}
