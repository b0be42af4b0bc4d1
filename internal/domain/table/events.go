package table

import (
	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeOrderTable = "OrderTable"
	AggregateTypeTableGroup = "TableGroup"
)

// Event type constants
const (
	EventTypeTableOccupancyChanged = "TableOccupancyChanged"
	EventTypeTableGroupFormed      = "TableGroupFormed"
	EventTypeTableGroupDissolved   = "TableGroupDissolved"
)

// TableOccupancyChangedEvent is published when a table's empty flag flips
type TableOccupancyChangedEvent struct {
	shared.BaseDomainEvent
	TableID uuid.UUID `json:"table_id"`
	Empty   bool      `json:"empty"`
}

// NewTableOccupancyChangedEvent creates a new TableOccupancyChangedEvent
func NewTableOccupancyChangedEvent(t *OrderTable) *TableOccupancyChangedEvent {
	return &TableOccupancyChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTableOccupancyChanged, AggregateTypeOrderTable, t.ID),
		TableID:         t.ID,
		Empty:           t.Empty,
	}
}

// TableGroupFormedEvent is published when tables are joined into a group
type TableGroupFormedEvent struct {
	shared.BaseDomainEvent
	TableGroupID uuid.UUID   `json:"table_group_id"`
	TableIDs     []uuid.UUID `json:"table_ids"`
}

// NewTableGroupFormedEvent creates a new TableGroupFormedEvent
func NewTableGroupFormedEvent(g *TableGroup) *TableGroupFormedEvent {
	return &TableGroupFormedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTableGroupFormed, AggregateTypeTableGroup, g.ID),
		TableGroupID:    g.ID,
		TableIDs:        g.TableIDs,
	}
}

// TableGroupDissolvedEvent is published when a group's members are released
type TableGroupDissolvedEvent struct {
	shared.BaseDomainEvent
	TableGroupID uuid.UUID   `json:"table_group_id"`
	Released     []uuid.UUID `json:"released_table_ids"`
}

// NewTableGroupDissolvedEvent creates a new TableGroupDissolvedEvent
func NewTableGroupDissolvedEvent(g *TableGroup, released []uuid.UUID) *TableGroupDissolvedEvent {
	return &TableGroupDissolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTableGroupDissolved, AggregateTypeTableGroup, g.ID),
		TableGroupID:    g.ID,
		Released:        released,
	}
}
