package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Menu is a priced bundle of products belonging to one menu group.
// A menu's price may never exceed the sum of its products' prices times
// their quantities. Menus are immutable after creation.
type Menu struct {
	shared.BaseAggregateRoot
	Name        string
	Price       valueobject.Price
	MenuGroupID uuid.UUID
	Products    []MenuProduct
}

// MenuProduct is one product line of a menu
type MenuProduct struct {
	ID        uuid.UUID
	MenuID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int64
	Seq       int
}

// MenuProductLine is a requested (product, quantity) pair
type MenuProductLine struct {
	ProductID uuid.UUID
	Quantity  int64
}

// MenuDraft is a menu request that passed the checks that need no lookups
type MenuDraft struct {
	Name        string
	Price       valueobject.Price
	MenuGroupID uuid.UUID
	Lines       []MenuProductLine
}

// NewMenuDraft validates the parts of a menu request that can be checked
// before any reference is resolved: name, price, quantities and duplicate
// products.
func NewMenuDraft(name string, price *decimal.Decimal, menuGroupID uuid.UUID, lines []MenuProductLine) (*MenuDraft, error) {
	p, err := requirePrice("Menu", price)
	if err != nil {
		return nil, err
	}
	if err := validateName("Menu", name); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity < 0 {
			return nil, shared.InvalidInput("Quantity of product %s cannot be negative", line.ProductID)
		}
		if _, dup := seen[line.ProductID]; dup {
			return nil, shared.InvalidInput("Product %s appears more than once", line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}

	return &MenuDraft{
		Name:        strings.TrimSpace(name),
		Price:       p,
		MenuGroupID: menuGroupID,
		Lines:       lines,
	}, nil
}

// ProductIDs returns the requested product ids in request order
func (d *MenuDraft) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(d.Lines))
	for i, line := range d.Lines {
		ids[i] = line.ProductID
	}
	return ids
}

// Build resolves the draft against the loaded products and enforces the
// price ceiling. Every requested product must be present in products.
func (d *MenuDraft) Build(products []Product) (*Menu, error) {
	byID := make(map[uuid.UUID]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	if len(byID) != len(d.Lines) {
		return nil, shared.ReferenceNotFound("Menu references %d products, %d found", len(d.Lines), len(byID))
	}

	sum := valueobject.ZeroPrice()
	for _, line := range d.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, shared.ReferenceNotFound("Product %s not found", line.ProductID)
		}
		sum = sum.Add(product.Price.Mul(line.Quantity))
	}
	if d.Price.GreaterThan(sum) {
		return nil, shared.InvalidInput("Menu price %s exceeds the product total %s", d.Price, sum)
	}

	menu := &Menu{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              d.Name,
		Price:             d.Price,
		MenuGroupID:       d.MenuGroupID,
		Products:          make([]MenuProduct, len(d.Lines)),
	}
	for i, line := range d.Lines {
		menu.Products[i] = MenuProduct{
			ID:        uuid.New(),
			MenuID:    menu.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Seq:       i,
		}
	}

	menu.AddDomainEvent(NewMenuCreatedEvent(menu))
	return menu, nil
}
