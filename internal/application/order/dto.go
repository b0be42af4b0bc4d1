package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/order"
)

// OrderLineItemRequest is one menu line of an order request
type OrderLineItemRequest struct {
	MenuID   uuid.UUID `json:"menu_id" binding:"required"`
	Quantity int64     `json:"quantity"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	OrderTableID   uuid.UUID              `json:"order_table_id" binding:"required"`
	OrderLineItems []OrderLineItemRequest `json:"order_line_items" binding:"dive"`
}

// ChangeOrderStatusRequest represents a request to change an order's status
type ChangeOrderStatusRequest struct {
	OrderStatus string `json:"order_status" binding:"required"`
}

// OrderLineItemResponse represents an order line in API responses
type OrderLineItemResponse struct {
	ID       uuid.UUID `json:"id"`
	MenuID   uuid.UUID `json:"menu_id"`
	Quantity int64     `json:"quantity"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID               `json:"id"`
	OrderTableID   uuid.UUID               `json:"order_table_id"`
	OrderStatus    string                  `json:"order_status"`
	OrderedTime    time.Time               `json:"ordered_time"`
	OrderLineItems []OrderLineItemResponse `json:"order_line_items"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderLineItemResponse, len(o.LineItems))
	for i, li := range o.LineItems {
		items[i] = OrderLineItemResponse{
			ID:       li.ID,
			MenuID:   li.MenuID,
			Quantity: li.Quantity,
		}
	}
	return OrderResponse{
		ID:             o.ID,
		OrderTableID:   o.OrderTableID,
		OrderStatus:    o.Status.String(),
		OrderedTime:    o.OrderedTime,
		OrderLineItems: items,
	}
}
