package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks the fulfillment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusOrdered        OrderStatus = "ORDERED"
	OrderStatusInTransit      OrderStatus = "IN_TRANSIT"
	OrderStatusPicking        OrderStatus = "PICKING"
	OrderStatusPicked         OrderStatus = "PICKED"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusReceived       OrderStatus = "RECEIVED"
	OrderStatusTransferFailed OrderStatus = "TRANSFER_FAILED"
	OrderStatusInRoute        OrderStatus = "IN_ROUTE"
	OrderStatusReadyToPack    OrderStatus = "READY_TO_PACK"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusOrdered,
	OrderStatusInTransit,
	OrderStatusPicking,
	OrderStatusPicked,
	OrderStatusShipped,
	OrderStatusReceived,
	OrderStatusTransferFailed,
	OrderStatusInRoute,
	OrderStatusReadyToPack,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus, ignoring case.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if strings.EqualFold(string(candidate), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
