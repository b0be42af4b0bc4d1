package order

import (
	"strings"

	"github.com/kitchenpos/backend/internal/domain/shared"
)

// OrderStatus represents where an order is in its lifecycle
type OrderStatus string

const (
	OrderStatusCooking    OrderStatus = "COOKING"
	OrderStatusMeal       OrderStatus = "MEAL"
	OrderStatusCompletion OrderStatus = "COMPLETION"
)

// ActiveStatuses are the statuses that keep a table occupied
var ActiveStatuses = []OrderStatus{OrderStatusCooking, OrderStatusMeal}

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCooking, OrderStatusMeal, OrderStatusCompletion:
		return true
	}
	return false
}

// IsTerminal reports whether no further change is allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompletion
}

func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus parses a status name; matching is case-sensitive
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", shared.InvalidInput("Unknown order status %q", raw)
	}
	return s, nil
}
