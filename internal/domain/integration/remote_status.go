package integration

import (
	"github.com/erp/sellerops/internal/domain/trade"
)

// Marketplace shipment-package statuses
const (
	RemoteStatusCreated           = "Created"
	RemoteStatusAwaiting          = "Awaiting"
	RemoteStatusPicking           = "Picking"
	RemoteStatusInvoiced          = "Invoiced"
	RemoteStatusRepack            = "Repack"
	RemoteStatusUnPacked          = "UnPacked"
	RemoteStatusShipped           = "Shipped"
	RemoteStatusAtCollectionPoint = "AtCollectionPoint"
	RemoteStatusDelivered         = "Delivered"
	RemoteStatusUnDelivered       = "UnDelivered"
	RemoteStatusCancelled         = "Cancelled"
	RemoteStatusUnSupplied        = "UnSupplied"
	RemoteStatusReturned          = "Returned"
)

var remoteStatusTable = map[string]trade.OrderStatus{
	RemoteStatusCreated:           trade.OrderStatusPending,
	RemoteStatusAwaiting:          trade.OrderStatusPending,
	RemoteStatusPicking:           trade.OrderStatusProcessing,
	RemoteStatusInvoiced:          trade.OrderStatusProcessing,
	RemoteStatusRepack:            trade.OrderStatusProcessing,
	RemoteStatusUnPacked:          trade.OrderStatusProcessing,
	RemoteStatusShipped:           trade.OrderStatusShipped,
	RemoteStatusAtCollectionPoint: trade.OrderStatusShipped,
	RemoteStatusDelivered:         trade.OrderStatusDelivered,
	RemoteStatusUnDelivered:       trade.OrderStatusUndelivered,
	RemoteStatusCancelled:         trade.OrderStatusCancelled,
	RemoteStatusUnSupplied:        trade.OrderStatusCancelled,
	RemoteStatusReturned:          trade.OrderStatusReturned,
}

// MapRemoteStatus converts a marketplace status to the internal order status.
// The mapping is total: anything not in the table maps to PENDING.
func MapRemoteStatus(remote string) trade.OrderStatus {
	if s, ok := remoteStatusTable[remote]; ok {
		return s
	}
	return trade.OrderStatusPending
}
