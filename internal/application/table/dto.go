package table

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/table"
)

// CreateTableRequest represents a request to register a table
type CreateTableRequest struct {
	NumberOfGuests int  `json:"number_of_guests"`
	Empty          bool `json:"empty"`
}

// ChangeEmptyRequest represents a request to change a table's occupancy
type ChangeEmptyRequest struct {
	Empty *bool `json:"empty" binding:"required"`
}

// ChangeNumberOfGuestsRequest represents a request to change the guest count
type ChangeNumberOfGuestsRequest struct {
	NumberOfGuests *int `json:"number_of_guests" binding:"required"`
}

// TableResponse represents a table in API responses
type TableResponse struct {
	ID             uuid.UUID  `json:"id"`
	NumberOfGuests int        `json:"number_of_guests"`
	Empty          bool       `json:"empty"`
	TableGroupID   *uuid.UUID `json:"table_group_id"`
}

// CreateTableGroupRequest represents a request to join tables into a group
type CreateTableGroupRequest struct {
	OrderTableIDs []uuid.UUID `json:"order_table_ids" binding:"required"`
}

// TableGroupResponse represents a table group in API responses
type TableGroupResponse struct {
	ID          uuid.UUID       `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	TableIDs    []uuid.UUID     `json:"table_ids"`
	OrderTables []TableResponse `json:"order_tables"`
}

// ToTableResponse converts a domain OrderTable to TableResponse
func ToTableResponse(t *table.OrderTable) TableResponse {
	return TableResponse{
		ID:             t.ID,
		NumberOfGuests: t.NumberOfGuests,
		Empty:          t.Empty,
		TableGroupID:   t.TableGroupID,
	}
}

// ToTableGroupResponse converts a group and its current members
func ToTableGroupResponse(g *table.TableGroup, members []*table.OrderTable) TableGroupResponse {
	tables := make([]TableResponse, len(members))
	for i, m := range members {
		tables[i] = ToTableResponse(m)
	}
	return TableGroupResponse{
		ID:          g.ID,
		CreatedAt:   g.CreatedAt,
		TableIDs:    g.TableIDs,
		OrderTables: tables,
	}
}
