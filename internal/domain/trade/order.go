package trade

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/sellerops/internal/domain/shared"
)

// OrderStatus represents the internal status of a marketplace order
type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "PENDING"
	OrderStatusProcessing  OrderStatus = "PROCESSING"
	OrderStatusCollecting  OrderStatus = "COLLECTING"
	OrderStatusPacked      OrderStatus = "PACKED"
	OrderStatusShipped     OrderStatus = "SHIPPED"
	OrderStatusDelivered   OrderStatus = "DELIVERED"
	OrderStatusUndelivered OrderStatus = "UNDELIVERED"
	OrderStatusCancelled   OrderStatus = "CANCELLED"
	OrderStatusReturned    OrderStatus = "RETURNED"
)

// AllOrderStatuses lists every internal status
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCollecting,
	OrderStatusPacked,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusUndelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	return slices.Contains(AllOrderStatuses, s)
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsClaimed reports whether the order is held by a route (COLLECTING or PACKED)
func (s OrderStatus) IsClaimed() bool {
	return s == OrderStatusCollecting || s == OrderStatusPacked
}

// IsPreFulfilment reports whether the marketplace still considers the order open
func (s OrderStatus) IsPreFulfilment() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// ParseOrderStatus parses a status name, case-insensitively
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", shared.NewValidationError("unknown order status: " + raw)
	}
	return s, nil
}

// OrderLine is one product line of a marketplace order
type OrderLine struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   string // marketplace barcode
	ProductName string
	MerchantSKU string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Order is a marketplace shipment package persisted locally.
// ExternalID (the shipment-package id) is the upsert key.
type Order struct {
	shared.BaseAggregateRoot
	StoreID             uuid.UUID
	ExternalID          string
	OrderNumber         string
	Status              OrderStatus
	RemoteStatus        string
	CustomerName        string
	TotalPrice          decimal.Decimal
	GrossAmount         decimal.Decimal
	TotalDiscount       decimal.Decimal
	Currency            string
	CargoTrackingNumber string
	CargoProviderName   string
	OrderedAt           time.Time
	LastSyncedAt        time.Time
	RawPayload          []byte
	Lines               []OrderLine
}

// NewOrder creates a new order for a store
func NewOrder(storeID uuid.UUID, externalID, orderNumber string, lines []OrderLine) (*Order, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("store ID cannot be empty")
	}
	if strings.TrimSpace(externalID) == "" {
		return nil, shared.NewValidationError("external ID cannot be empty")
	}
	for _, l := range lines {
		if l.ProductID == "" {
			return nil, shared.NewValidationError("order line product ID cannot be empty")
		}
		if l.Quantity <= 0 {
			return nil, shared.NewValidationError("order line quantity must be positive")
		}
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		ExternalID:        externalID,
		OrderNumber:       orderNumber,
		Status:            OrderStatusPending,
		TotalPrice:        decimal.Zero,
		GrossAmount:       decimal.Zero,
		TotalDiscount:     decimal.Zero,
		LastSyncedAt:      time.Now(),
	}
	order.Lines = make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		l.ID = uuid.New()
		l.OrderID = order.ID
		order.Lines = append(order.Lines, l)
	}
	return order, nil
}

// IsBatchable is the eligibility predicate shared by route suggestions
// and the manual order filter: the order is not held by any route.
func (o *Order) IsBatchable() bool {
	return !o.Status.IsClaimed()
}

// TotalQuantity sums the quantities of all lines
func (o *Order) TotalQuantity() int {
	total := 0
	for _, l := range o.Lines {
		total += l.Quantity
	}
	return total
}

// DistinctProductIDs returns the sorted set of product ids across lines
func (o *Order) DistinctProductIDs() []string {
	ids := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		if !slices.Contains(ids, l.ProductID) {
			ids = append(ids, l.ProductID)
		}
	}
	slices.Sort(ids)
	return ids
}

// HasProduct reports whether any line references the product id
func (o *Order) HasProduct(productID string) bool {
	return slices.ContainsFunc(o.Lines, func(l OrderLine) bool {
		return l.ProductID == productID
	})
}

// ClaimForRoute moves the order to COLLECTING unless it is already claimed.
// Returns true if the status changed.
func (o *Order) ClaimForRoute() bool {
	if o.Status.IsClaimed() {
		return false
	}
	o.Status = OrderStatusCollecting
	o.Touch()
	return true
}

// MarkPacked marks the order as packed after its route label was printed
func (o *Order) MarkPacked() {
	o.Status = OrderStatusPacked
	o.Touch()
}

// ReleaseFromRoute returns a COLLECTING order to PENDING.
// Orders in any other status are left alone; returns true if the status changed.
func (o *Order) ReleaseFromRoute() bool {
	if o.Status != OrderStatusCollecting {
		return false
	}
	o.Status = OrderStatusPending
	o.Touch()
	return true
}

// MergeRemote overwrites the marketplace-origin fields with a freshly mapped
// copy of the same order. A route claim survives a remote status that still
// reports the order as open; any later remote status wins.
func (o *Order) MergeRemote(incoming *Order) {
	status := incoming.Status
	if o.Status.IsClaimed() && status.IsPreFulfilment() {
		status = o.Status
	}

	o.StoreID = incoming.StoreID
	o.OrderNumber = incoming.OrderNumber
	o.Status = status
	o.RemoteStatus = incoming.RemoteStatus
	o.CustomerName = incoming.CustomerName
	o.TotalPrice = incoming.TotalPrice
	o.GrossAmount = incoming.GrossAmount
	o.TotalDiscount = incoming.TotalDiscount
	o.Currency = incoming.Currency
	o.CargoTrackingNumber = incoming.CargoTrackingNumber
	o.CargoProviderName = incoming.CargoProviderName
	o.OrderedAt = incoming.OrderedAt
	o.RawPayload = incoming.RawPayload
	o.LastSyncedAt = time.Now()

	o.Lines = make([]OrderLine, 0, len(incoming.Lines))
	for _, l := range incoming.Lines {
		l.OrderID = o.ID
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		o.Lines = append(o.Lines, l)
	}
	o.Touch()
}
