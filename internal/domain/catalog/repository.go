package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByIDs returns the products that exist among ids; missing ids are
	// simply absent from the result
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll returns every product in insertion order
	FindAll(ctx context.Context) ([]Product, error)

	Save(ctx context.Context, product *Product) error
}

// MenuGroupRepository defines the interface for menu group persistence
type MenuGroupRepository interface {
	// ExistsByID checks whether a menu group exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	FindAll(ctx context.Context) ([]MenuGroup, error)
	Save(ctx context.Context, group *MenuGroup) error
}

// MenuRepository defines the interface for menu persistence.
// Menus are always loaded with their products.
type MenuRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Menu, error)

	// FindAll returns every menu in insertion order
	FindAll(ctx context.Context) ([]Menu, error)

	// Save persists a menu together with its products
	Save(ctx context.Context, menu *Menu) error
}
