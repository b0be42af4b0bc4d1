package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/kitchenpos/backend/internal/application/catalog"
)

// CatalogHandler serves products, menu groups and menus
type CatalogHandler struct {
	BaseHandler
	productService   *catalogapp.ProductService
	menuGroupService *catalogapp.MenuGroupService
	menuService      *catalogapp.MenuService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	productService *catalogapp.ProductService,
	menuGroupService *catalogapp.MenuGroupService,
	menuService *catalogapp.MenuService,
) *CatalogHandler {
	return &CatalogHandler{
		productService:   productService,
		menuGroupService: menuGroupService,
		menuService:      menuService,
	}
}

// CreateProduct handles POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, products, len(products))
}

// CreateMenuGroup handles POST /menu-groups
func (h *CatalogHandler) CreateMenuGroup(c *gin.Context) {
	var req catalogapp.CreateMenuGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}
	group, err := h.menuGroupService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, group)
}

// ListMenuGroups handles GET /menu-groups
func (h *CatalogHandler) ListMenuGroups(c *gin.Context) {
	groups, err := h.menuGroupService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, groups, len(groups))
}

// CreateMenu handles POST /menus
func (h *CatalogHandler) CreateMenu(c *gin.Context) {
	var req catalogapp.CreateMenuRequest
	if !h.BindJSON(c, &req) {
		return
	}
	menu, err := h.menuService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, menu)
}

// ListMenus handles GET /menus
func (h *CatalogHandler) ListMenus(c *gin.Context) {
	menus, err := h.menuService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, menus, len(menus))
}
