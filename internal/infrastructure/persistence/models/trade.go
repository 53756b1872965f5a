package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/erp/sellerops/internal/domain/trade"
)

// OrderModel is the persistence model for the Order aggregate root.
// ExternalID is the marketplace shipment-package id and the upsert key.
type OrderModel struct {
	AggregateModel
	StoreID             uuid.UUID         `gorm:"type:uuid;not null;index:idx_orders_store_status,priority:1"`
	ExternalID          string            `gorm:"type:varchar(64);not null;uniqueIndex"`
	OrderNumber         string            `gorm:"type:varchar(64);not null;index"`
	Status              trade.OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_orders_store_status,priority:2"`
	RemoteStatus        string            `gorm:"type:varchar(50)"`
	CustomerName        string            `gorm:"type:varchar(200)"`
	TotalPrice          decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	GrossAmount         decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscount       decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Currency            string            `gorm:"type:varchar(3)"`
	CargoTrackingNumber string            `gorm:"type:varchar(64)"`
	CargoProviderName   string            `gorm:"type:varchar(100)"`
	OrderedAt           time.Time         `gorm:"index"`
	LastSyncedAt        time.Time         `gorm:"not null"`
	RawPayload          datatypes.JSON
	Lines               []OrderLineModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		BaseAggregateRoot:   m.Root(),
		StoreID:             m.StoreID,
		ExternalID:          m.ExternalID,
		OrderNumber:         m.OrderNumber,
		Status:              m.Status,
		RemoteStatus:        m.RemoteStatus,
		CustomerName:        m.CustomerName,
		TotalPrice:          m.TotalPrice,
		GrossAmount:         m.GrossAmount,
		TotalDiscount:       m.TotalDiscount,
		Currency:            m.Currency,
		CargoTrackingNumber: m.CargoTrackingNumber,
		CargoProviderName:   m.CargoProviderName,
		OrderedAt:           m.OrderedAt,
		LastSyncedAt:        m.LastSyncedAt,
		RawPayload:          []byte(m.RawPayload),
		Lines:               make([]trade.OrderLine, len(m.Lines)),
	}
	for i := range m.Lines {
		order.Lines[i] = m.Lines[i].ToDomain()
	}
	return order
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		StoreID:             o.StoreID,
		ExternalID:          o.ExternalID,
		OrderNumber:         o.OrderNumber,
		Status:              o.Status,
		RemoteStatus:        o.RemoteStatus,
		CustomerName:        o.CustomerName,
		TotalPrice:          o.TotalPrice,
		GrossAmount:         o.GrossAmount,
		TotalDiscount:       o.TotalDiscount,
		Currency:            o.Currency,
		CargoTrackingNumber: o.CargoTrackingNumber,
		CargoProviderName:   o.CargoProviderName,
		OrderedAt:           o.OrderedAt,
		LastSyncedAt:        o.LastSyncedAt,
		Lines:               make([]OrderLineModel, len(o.Lines)),
	}
	if len(o.RawPayload) > 0 {
		m.RawPayload = datatypes.JSON(o.RawPayload)
	}
	m.SetRoot(o.BaseAggregateRoot)
	for i := range o.Lines {
		m.Lines[i] = OrderLineModelFromDomain(o.Lines[i])
		m.Lines[i].Position = i
	}
	return m
}

// OrderLineModel is the persistence model for an order line
type OrderLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   string          `gorm:"type:varchar(100);not null;index"`
	ProductName string          `gorm:"type:varchar(500)"`
	MerchantSKU string          `gorm:"type:varchar(100)"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Position    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine
func (m *OrderLineModel) ToDomain() trade.OrderLine {
	return trade.OrderLine{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		MerchantSKU: m.MerchantSKU,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
	}
}

// OrderLineModelFromDomain creates a persistence model from a domain OrderLine
func OrderLineModelFromDomain(l trade.OrderLine) OrderLineModel {
	return OrderLineModel{
		ID:          l.ID,
		OrderID:     l.OrderID,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		MerchantSKU: l.MerchantSKU,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
	}
}
