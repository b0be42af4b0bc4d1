package catalog

import (
	"strings"

	"github.com/kitchenpos/backend/internal/domain/shared"
)

// MenuGroup is a named category that menus belong to
type MenuGroup struct {
	shared.BaseAggregateRoot
	Name string
}

// NewMenuGroup creates a new menu group
func NewMenuGroup(name string) (*MenuGroup, error) {
	if err := validateName("Menu group", name); err != nil {
		return nil, err
	}
	return &MenuGroup{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
	}, nil
}
