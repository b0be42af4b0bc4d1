package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
	"github.com/kitchenpos/backend/internal/domain/table"
)

// Order is a set of menu lines placed for one table
type Order struct {
	shared.BaseAggregateRoot
	OrderTableID uuid.UUID
	Status       OrderStatus
	OrderedTime  time.Time
	LineItems    []OrderLineItem
}

// OrderLineItem is one menu line of an order
type OrderLineItem struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	MenuID   uuid.UUID
	Quantity int64
	Seq      int
}

// LineRequest is a requested (menu, quantity) pair
type LineRequest struct {
	MenuID   uuid.UUID
	Quantity int64
}

// ValidateLines checks the line items before any lookup: at least one
// line, a positive quantity on each, and no menu repeated.
func ValidateLines(lines []LineRequest) error {
	if len(lines) == 0 {
		return shared.InvalidInput("An order needs at least one line item")
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return shared.InvalidInput("Quantity of menu %s must be at least 1", line.MenuID)
		}
		if _, dup := seen[line.MenuID]; dup {
			return shared.InvalidInput("Menu %s appears more than once", line.MenuID)
		}
		seen[line.MenuID] = struct{}{}
	}
	return nil
}

// MenuIDs returns the menu ids of the lines in request order
func MenuIDs(lines []LineRequest) []uuid.UUID {
	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.MenuID
	}
	return ids
}

// PlaceOrder creates a COOKING order for an occupied table. menus are the
// menus loaded for the lines; each line's menu must be among them.
func PlaceOrder(t *table.OrderTable, lines []LineRequest, menus []catalog.Menu) (*Order, error) {
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}
	priceOf := make(map[uuid.UUID]valueobject.Price, len(menus))
	for _, m := range menus {
		priceOf[m.ID] = m.Price
	}
	if len(priceOf) != len(lines) {
		return nil, shared.InvalidInput("Order references %d menus, %d found", len(lines), len(priceOf))
	}
	for _, line := range lines {
		if _, ok := priceOf[line.MenuID]; !ok {
			return nil, shared.InvalidInput("Menu %s not found", line.MenuID)
		}
	}
	if t.Empty {
		return nil, shared.InvalidState("Table %s is empty", t.ID)
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderTableID:      t.ID,
		Status:            OrderStatusCooking,
		LineItems:         make([]OrderLineItem, len(lines)),
	}
	o.OrderedTime = o.CreatedAt

	amount := valueobject.ZeroPrice()
	for i, line := range lines {
		o.LineItems[i] = OrderLineItem{
			ID:       uuid.New(),
			OrderID:  o.ID,
			MenuID:   line.MenuID,
			Quantity: line.Quantity,
			Seq:      i,
		}
		amount = amount.Add(priceOf[line.MenuID].Mul(line.Quantity))
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o, amount))
	return o, nil
}

// ChangeStatus moves the order to the named status. A completed order
// rejects every target, including invalid names. Apart from that lock any
// transition is allowed.
func (o *Order) ChangeStatus(raw string) error {
	if o.Status.IsTerminal() {
		return shared.InvalidState("Order %s is already completed", o.ID)
	}
	next, err := ParseOrderStatus(raw)
	if err != nil {
		return err
	}

	prev := o.Status
	o.Status = next
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, prev))
	return nil
}
