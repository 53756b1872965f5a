package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/sellerops/internal/domain/fulfillment"
	"github.com/erp/sellerops/internal/domain/trade"
)

// ==================== Route DTOs ====================

// RouteOrderInput references an order to put on a route. Version is the
// order version the caller last read; when set, the route is only created
// if the order is unchanged.
type RouteOrderInput struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	Version *int      `json:"version" binding:"omitempty,min=1"`
}

// CreateRouteRequest represents a request to create a route
type CreateRouteRequest struct {
	Name        string            `json:"name" binding:"required,min=1,max=200"`
	Description string            `json:"description" binding:"max=1000"`
	Orders      []RouteOrderInput `json:"orders" binding:"required,min=1,dive"`
}

// OrderIDs returns the referenced order ids in request order
func (r CreateRouteRequest) OrderIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Orders))
	for i, o := range r.Orders {
		ids[i] = o.OrderID
	}
	return ids
}

// RouteResponse represents a route in API responses
type RouteResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Status         string          `json:"status"`
	OrderCount     int             `json:"order_count"`
	OrderIDs       []uuid.UUID     `json:"order_ids"`
	Orders         []OrderResponse `json:"orders,omitempty"`
	LabelPrintedAt *time.Time      `json:"label_printed_at,omitempty"`
	LabelURL       string          `json:"label_url,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToRouteResponse converts a route to its response DTO
func ToRouteResponse(route *fulfillment.Route) RouteResponse {
	return RouteResponse{
		ID:             route.ID,
		Name:           route.Name,
		Description:    route.Description,
		Status:         string(route.Status),
		OrderCount:     route.OrderCount(),
		OrderIDs:       route.OrderIDs,
		LabelPrintedAt: route.LabelPrintedAt,
		LabelURL:       route.LabelURL,
		CancelledAt:    route.CancelledAt,
		CreatedAt:      route.CreatedAt,
		UpdatedAt:      route.UpdatedAt,
		Version:        route.Version,
	}
}

// ==================== Order DTOs ====================

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	MerchantSKU string          `json:"merchant_sku,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                  uuid.UUID           `json:"id"`
	StoreID             uuid.UUID           `json:"store_id"`
	ExternalID          string              `json:"external_id"`
	OrderNumber         string              `json:"order_number"`
	Status              string              `json:"status"`
	RemoteStatus        string              `json:"remote_status"`
	CustomerName        string              `json:"customer_name"`
	TotalQuantity       int                 `json:"total_quantity"`
	TotalPrice          decimal.Decimal     `json:"total_price"`
	CargoTrackingNumber string              `json:"cargo_tracking_number,omitempty"`
	Lines               []OrderLineResponse `json:"lines"`
	OrderedAt           time.Time           `json:"ordered_at"`
	Version             int                 `json:"version"`
}

// ToOrderResponse converts an order to its response DTO
func ToOrderResponse(o *trade.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			MerchantSKU: l.MerchantSKU,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}
	return OrderResponse{
		ID:                  o.ID,
		StoreID:             o.StoreID,
		ExternalID:          o.ExternalID,
		OrderNumber:         o.OrderNumber,
		Status:              string(o.Status),
		RemoteStatus:        o.RemoteStatus,
		CustomerName:        o.CustomerName,
		TotalQuantity:       o.TotalQuantity(),
		TotalPrice:          o.TotalPrice,
		CargoTrackingNumber: o.CargoTrackingNumber,
		Lines:               lines,
		OrderedAt:           o.OrderedAt,
		Version:             o.Version,
	}
}

// ToOrderResponses converts a list of orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// ==================== Suggestion DTOs ====================

// OrderQuery carries the manual filter and suggestion query parameters
type OrderQuery struct {
	ProductIDs []string
	Quantities []int
	StoreID    *uuid.UUID
	Status     *trade.OrderStatus
}

// ToFilter converts the query to the domain filter
func (q OrderQuery) ToFilter() fulfillment.OrderFilter {
	return fulfillment.OrderFilter{
		ProductIDs: q.ProductIDs,
		Quantities: q.Quantities,
		StoreID:    q.StoreID,
		Status:     q.Status,
	}
}

// ProductStatResponse represents a product aggregate of a suggestion
type ProductStatResponse struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	OrderCount    int    `json:"order_count"`
	TotalQuantity int    `json:"total_quantity"`
}

// SuggestionResponse represents a route suggestion in API responses
type SuggestionResponse struct {
	ID         string                `json:"id"`
	StoreID    uuid.UUID             `json:"store_id"`
	Type       string                `json:"type"`
	Quantity   int                   `json:"quantity,omitempty"`
	Priority   int                   `json:"priority"`
	OrderCount int                   `json:"order_count"`
	Products   []ProductStatResponse `json:"products"`
	Orders     []OrderResponse       `json:"orders"`
}

// ToSuggestionResponse converts a suggestion to its response DTO
func ToSuggestionResponse(s *fulfillment.Suggestion) SuggestionResponse {
	products := make([]ProductStatResponse, len(s.Products))
	for i, p := range s.Products {
		products[i] = ProductStatResponse(p)
	}
	return SuggestionResponse{
		ID:         s.ID(),
		StoreID:    s.Key.StoreID,
		Type:       string(s.Key.Type),
		Quantity:   s.Key.Quantity,
		Priority:   s.Priority,
		OrderCount: s.OrderCount(),
		Products:   products,
		Orders:     ToOrderResponses(s.Orders),
	}
}
