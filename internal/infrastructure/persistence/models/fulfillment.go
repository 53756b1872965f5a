package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/sellerops/internal/domain/fulfillment"
)

// RouteModel is the persistence model for the Route aggregate root.
// Routes are never deleted; cancellation is a status.
type RouteModel struct {
	AggregateModel
	Name           string                  `gorm:"type:varchar(200);not null"`
	Description    string                  `gorm:"type:text"`
	Status         fulfillment.RouteStatus `gorm:"type:varchar(20);not null;default:'COLLECTING';index"`
	LabelPrintedAt *time.Time
	LabelURL       string `gorm:"type:varchar(1000)"`
	CancelledAt    *time.Time
	Orders         []RouteOrderModel `gorm:"foreignKey:RouteID;references:ID"`
}

// TableName returns the table name for GORM
func (RouteModel) TableName() string {
	return "routes"
}

// ToDomain converts the persistence model to a domain Route.
// Order ids come back in the order they were added to the route.
func (m *RouteModel) ToDomain() *fulfillment.Route {
	route := &fulfillment.Route{
		BaseAggregateRoot: m.Root(),
		Name:              m.Name,
		Description:       m.Description,
		Status:            m.Status,
		LabelPrintedAt:    m.LabelPrintedAt,
		LabelURL:          m.LabelURL,
		CancelledAt:       m.CancelledAt,
		OrderIDs:          make([]uuid.UUID, len(m.Orders)),
	}
	for i, link := range m.Orders {
		route.OrderIDs[i] = link.OrderID
	}
	return route
}

// RouteModelFromDomain creates a persistence model from a domain Route
func RouteModelFromDomain(r *fulfillment.Route) *RouteModel {
	m := &RouteModel{
		Name:           r.Name,
		Description:    r.Description,
		Status:         r.Status,
		LabelPrintedAt: r.LabelPrintedAt,
		LabelURL:       r.LabelURL,
		CancelledAt:    r.CancelledAt,
		Orders:         make([]RouteOrderModel, len(r.OrderIDs)),
	}
	m.SetRoot(r.BaseAggregateRoot)
	for i, id := range r.OrderIDs {
		m.Orders[i] = RouteOrderModel{RouteID: r.ID, OrderID: id, Position: i}
	}
	return m
}

// RouteOrderModel links a route to one of its member orders
type RouteOrderModel struct {
	RouteID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RouteOrderModel) TableName() string {
	return "route_orders"
}
