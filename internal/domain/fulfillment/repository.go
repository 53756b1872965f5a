package fulfillment

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/sellerops/internal/domain/trade"
)

// RouteRepository defines the interface for route persistence. Routes and
// the orders they mutate are written together in one transaction; each
// order write is conditional on the version it was loaded with.
type RouteRepository interface {
	// FindByID finds a route by ID, including its member order ids
	FindByID(ctx context.Context, id uuid.UUID) (*Route, error)

	// FindAll lists routes, newest first. An empty status set means all statuses.
	FindAll(ctx context.Context, statuses []RouteStatus) ([]Route, error)

	// Create inserts the route with its order links and persists the
	// changed member orders
	Create(ctx context.Context, route *Route, orders []*trade.Order) error

	// Save updates the route and the changed member orders
	Save(ctx context.Context, route *Route, orders []*trade.Order) error
}
