package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product.
// Price is a pointer so an absent price can be told apart from zero.
type CreateProductRequest struct {
	Name  string           `json:"name" binding:"required,min=1,max=255"`
	Price *decimal.Decimal `json:"price"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Price     valueobject.Price `json:"price"`
	CreatedAt time.Time         `json:"created_at"`
}

// CreateMenuGroupRequest represents a request to create a menu group
type CreateMenuGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// MenuGroupResponse represents a menu group in API responses
type MenuGroupResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MenuProductRequest is one product line of a menu request
type MenuProductRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity"`
}

// CreateMenuRequest represents a request to create a menu
type CreateMenuRequest struct {
	Name         string               `json:"name" binding:"required,min=1,max=255"`
	Price        *decimal.Decimal     `json:"price"`
	MenuGroupID  uuid.UUID            `json:"menu_group_id" binding:"required"`
	MenuProducts []MenuProductRequest `json:"menu_products" binding:"dive"`
}

// MenuProductResponse represents a menu product line in API responses
type MenuProductResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// MenuResponse represents a menu in API responses
type MenuResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Price        valueobject.Price     `json:"price"`
	MenuGroupID  uuid.UUID             `json:"menu_group_id"`
	MenuProducts []MenuProductResponse `json:"menu_products"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}

// ToMenuGroupResponse converts a domain MenuGroup to MenuGroupResponse
func ToMenuGroupResponse(g *catalog.MenuGroup) MenuGroupResponse {
	return MenuGroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
	}
}

// ToMenuResponse converts a domain Menu to MenuResponse
func ToMenuResponse(m *catalog.Menu) MenuResponse {
	products := make([]MenuProductResponse, len(m.Products))
	for i, mp := range m.Products {
		products[i] = MenuProductResponse{
			ID:        mp.ID,
			ProductID: mp.ProductID,
			Quantity:  mp.Quantity,
		}
	}
	return MenuResponse{
		ID:           m.ID,
		Name:         m.Name,
		Price:        m.Price,
		MenuGroupID:  m.MenuGroupID,
		MenuProducts: products,
		CreatedAt:    m.CreatedAt,
	}
}
