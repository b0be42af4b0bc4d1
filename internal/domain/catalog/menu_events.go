package catalog

import (
	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeMenu = "Menu"

// EventTypeMenuCreated is the event type for new menus
const EventTypeMenuCreated = "MenuCreated"

// MenuCreatedEvent is published when a menu is created
type MenuCreatedEvent struct {
	shared.BaseDomainEvent
	MenuID       uuid.UUID         `json:"menu_id"`
	MenuGroupID  uuid.UUID         `json:"menu_group_id"`
	Name         string            `json:"name"`
	Price        valueobject.Price `json:"price"`
	ProductCount int               `json:"product_count"`
}

// NewMenuCreatedEvent creates a new MenuCreatedEvent
func NewMenuCreatedEvent(menu *Menu) *MenuCreatedEvent {
	return &MenuCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuCreated, AggregateTypeMenu, menu.ID),
		MenuID:          menu.ID,
		MenuGroupID:     menu.MenuGroupID,
		Name:            menu.Name,
		Price:           menu.Price,
		ProductCount:    len(menu.Products),
	}
}
