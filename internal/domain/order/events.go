package order

import (
	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderPlacedEvent is published when an order is placed
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID         `json:"order_id"`
	OrderTableID uuid.UUID         `json:"order_table_id"`
	LineCount    int               `json:"line_count"`
	Amount       valueobject.Price `json:"amount"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order, amount valueobject.Price) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderTableID:    o.OrderTableID,
		LineCount:       len(o.LineItems),
		Amount:          amount,
	}
}

// OrderStatusChangedEvent is published when an order changes status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID   `json:"order_id"`
	OrderTableID uuid.UUID   `json:"order_table_id"`
	From         OrderStatus `json:"from"`
	To           OrderStatus `json:"to"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderTableID:    o.OrderTableID,
		From:            from,
		To:              o.Status,
	}
}
