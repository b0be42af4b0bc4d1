package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/kitchenpos/backend/internal/application/order"
)

// OrderHandler serves orders
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	o, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, o)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.BaseHandler.List(c, orders, len(orders))
}

// ChangeOrderStatus handles PUT /orders/:id/order-status
func (h *OrderHandler) ChangeOrderStatus(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req orderapp.ChangeOrderStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	o, err := h.orderService.ChangeOrderStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}
