package handler

import (
	"github.com/gin-gonic/gin"

	tableapp "github.com/kitchenpos/backend/internal/application/table"
)

// TableHandler serves order tables and table groups
type TableHandler struct {
	BaseHandler
	tableService *tableapp.TableService
	groupService *tableapp.TableGroupService
}

// NewTableHandler creates a new TableHandler
func NewTableHandler(tableService *tableapp.TableService, groupService *tableapp.TableGroupService) *TableHandler {
	return &TableHandler{
		tableService: tableService,
		groupService: groupService,
	}
}

// CreateTable handles POST /tables
func (h *TableHandler) CreateTable(c *gin.Context) {
	var req tableapp.CreateTableRequest
	if !h.BindJSON(c, &req) {
		return
	}
	t, err := h.tableService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// ListTables handles GET /tables
func (h *TableHandler) ListTables(c *gin.Context) {
	tables, err := h.tableService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, tables, len(tables))
}

// ChangeEmpty handles PUT /tables/:id/empty
func (h *TableHandler) ChangeEmpty(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req tableapp.ChangeEmptyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	t, err := h.tableService.ChangeEmpty(c.Request.Context(), id, *req.Empty)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// ChangeNumberOfGuests handles PUT /tables/:id/number-of-guests
func (h *TableHandler) ChangeNumberOfGuests(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req tableapp.ChangeNumberOfGuestsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	t, err := h.tableService.ChangeNumberOfGuests(c.Request.Context(), id, *req.NumberOfGuests)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// CreateGroup handles POST /table-groups
func (h *TableHandler) CreateGroup(c *gin.Context) {
	var req tableapp.CreateTableGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}
	group, err := h.groupService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, group)
}

// GetGroup handles GET /table-groups/:id
func (h *TableHandler) GetGroup(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	group, err := h.groupService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, group)
}

// Ungroup handles DELETE /table-groups/:id
func (h *TableHandler) Ungroup(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.groupService.Ungroup(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
