package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kitchenpos/backend/internal/domain/order"
)

// OrderModel is the persistence model for order.Order.
type OrderModel struct {
	BaseModel
	OrderTableID uuid.UUID            `gorm:"type:uuid;not null;index:idx_orders_table_status,priority:1"`
	OrderStatus  string               `gorm:"type:varchar(20);not null;index:idx_orders_table_status,priority:2"`
	OrderedTime  time.Time            `gorm:"not null"`
	LineItems    []OrderLineItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string { return "orders" }

// ToDomain converts the persistence model to a domain Order. Line items
// must be preloaded in seq order.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.OrderLineItem, len(m.LineItems))
	for i := range m.LineItems {
		items[i] = m.LineItems[i].ToDomain()
	}
	return &order.Order{
		BaseAggregateRoot: m.ToAggregateRoot(),
		OrderTableID:      m.OrderTableID,
		Status:            order.OrderStatus(m.OrderStatus),
		OrderedTime:       m.OrderedTime,
		LineItems:         items,
	}
}

// OrderModelFromDomain creates a persistence model from a domain Order
// without its line items, which are written separately.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	return &OrderModel{
		BaseModel:    baseFromDomain(o.BaseEntity),
		OrderTableID: o.OrderTableID,
		OrderStatus:  o.Status.String(),
		OrderedTime:  o.OrderedTime,
	}
}

// OrderLineItemModel is the persistence model for order.OrderLineItem.
type OrderLineItemModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuID   uuid.UUID `gorm:"type:uuid;not null"`
	Quantity int64     `gorm:"not null"`
	Seq      int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineItemModel) TableName() string { return "order_line_items" }

// ToDomain converts the persistence model to a domain OrderLineItem.
func (m *OrderLineItemModel) ToDomain() order.OrderLineItem {
	return order.OrderLineItem{
		ID:       m.ID,
		OrderID:  m.OrderID,
		MenuID:   m.MenuID,
		Quantity: m.Quantity,
		Seq:      m.Seq,
	}
}

// OrderLineItemModelFromDomain creates a persistence model from a domain OrderLineItem.
func OrderLineItemModelFromDomain(li order.OrderLineItem) OrderLineItemModel {
	return OrderLineItemModel{
		ID:       li.ID,
		OrderID:  li.OrderID,
		MenuID:   li.MenuID,
		Quantity: li.Quantity,
		Seq:      li.Seq,
	}
}
