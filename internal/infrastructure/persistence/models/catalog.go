package models

import (
	"github.com/google/uuid"

	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
)

// ProductModel is the persistence model for catalog.Product.
type ProductModel struct {
	BaseModel
	Name  string            `gorm:"type:varchar(255);not null"`
	Price valueobject.Price `gorm:"type:numeric(19,2);not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string { return "products" }

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() catalog.Product {
	return catalog.Product{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Price:             m.Price,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	return &ProductModel{
		BaseModel: baseFromDomain(p.BaseEntity),
		Name:      p.Name,
		Price:     p.Price,
	}
}

// MenuGroupModel is the persistence model for catalog.MenuGroup.
type MenuGroupModel struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (MenuGroupModel) TableName() string { return "menu_groups" }

// ToDomain converts the persistence model to a domain MenuGroup.
func (m *MenuGroupModel) ToDomain() catalog.MenuGroup {
	return catalog.MenuGroup{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
	}
}

// MenuGroupModelFromDomain creates a persistence model from a domain MenuGroup.
func MenuGroupModelFromDomain(g *catalog.MenuGroup) *MenuGroupModel {
	return &MenuGroupModel{BaseModel: baseFromDomain(g.BaseEntity), Name: g.Name}
}

// MenuModel is the persistence model for catalog.Menu.
type MenuModel struct {
	BaseModel
	Name        string             `gorm:"type:varchar(255);not null"`
	Price       valueobject.Price  `gorm:"type:numeric(19,2);not null"`
	MenuGroupID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Products    []MenuProductModel `gorm:"foreignKey:MenuID"`
}

// TableName returns the table name for GORM
func (MenuModel) TableName() string { return "menus" }

// ToDomain converts the persistence model to a domain Menu. Products must
// be preloaded in seq order.
func (m *MenuModel) ToDomain() catalog.Menu {
	products := make([]catalog.MenuProduct, len(m.Products))
	for i := range m.Products {
		products[i] = m.Products[i].ToDomain()
	}
	return catalog.Menu{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Price:             m.Price,
		MenuGroupID:       m.MenuGroupID,
		Products:          products,
	}
}

// MenuModelFromDomain creates a persistence model from a domain Menu
// without its products, which are written separately.
func MenuModelFromDomain(menu *catalog.Menu) *MenuModel {
	return &MenuModel{
		BaseModel:   baseFromDomain(menu.BaseEntity),
		Name:        menu.Name,
		Price:       menu.Price,
		MenuGroupID: menu.MenuGroupID,
	}
}

// MenuProductModel is the persistence model for catalog.MenuProduct.
type MenuProductModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_menu_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_menu_product,priority:2"`
	Quantity  int64     `gorm:"not null"`
	Seq       int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MenuProductModel) TableName() string { return "menu_products" }

// ToDomain converts the persistence model to a domain MenuProduct.
func (m *MenuProductModel) ToDomain() catalog.MenuProduct {
	return catalog.MenuProduct{
		ID:        m.ID,
		MenuID:    m.MenuID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Seq:       m.Seq,
	}
}

// MenuProductModelFromDomain creates a persistence model from a domain MenuProduct.
func MenuProductModelFromDomain(p catalog.MenuProduct) MenuProductModel {
	return MenuProductModel{
		ID:        p.ID,
		MenuID:    p.MenuID,
		ProductID: p.ProductID,
		Quantity:  p.Quantity,
		Seq:       p.Seq,
	}
}
