package table

import (
	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/shared"
)

// MinGroupSize is the smallest number of tables a group may join
const MinGroupSize = 2

// TableGroup joins two or more tables for one party. Members reference the
// group by id; the group keeps the ids it was formed with.
type TableGroup struct {
	shared.BaseAggregateRoot
	TableIDs []uuid.UUID
}

// ValidateGroupRequest checks a requested member list before any lookup:
// at least two ids and no repeats.
func ValidateGroupRequest(tableIDs []uuid.UUID) error {
	if len(tableIDs) < MinGroupSize {
		return shared.InvalidInput("A table group needs at least %d tables, got %d", MinGroupSize, len(tableIDs))
	}
	seen := make(map[uuid.UUID]struct{}, len(tableIDs))
	for _, id := range tableIDs {
		if _, dup := seen[id]; dup {
			return shared.InvalidInput("Table %s appears more than once", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// FormGroup creates a group from the requested ids and the tables that were
// loaded for them. Every requested table must have been found, be empty and
// not already grouped. On success each table joins the group.
func FormGroup(tableIDs []uuid.UUID, tables []*OrderTable) (*TableGroup, error) {
	if err := ValidateGroupRequest(tableIDs); err != nil {
		return nil, err
	}
	if len(tables) != len(tableIDs) {
		return nil, shared.ReferenceNotFound("Table group references %d tables, %d found", len(tableIDs), len(tables))
	}
	for _, t := range tables {
		if !t.Empty {
			return nil, shared.InvalidState("Table %s is not empty", t.ID)
		}
		if t.IsGrouped() {
			return nil, shared.InvalidState("Table %s already belongs to table group %s", t.ID, *t.TableGroupID)
		}
	}

	group := &TableGroup{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TableIDs:          append([]uuid.UUID(nil), tableIDs...),
	}
	for _, t := range tables {
		t.joinGroup(group.ID)
	}

	group.AddDomainEvent(NewTableGroupFormedEvent(group))
	return group, nil
}

// Dissolve detaches members from the group. activeTables holds the member
// ids that still have a COOKING or MEAL order; if any exist nothing changes.
func (g *TableGroup) Dissolve(members []*OrderTable, activeTables map[uuid.UUID]bool) error {
	for _, t := range members {
		if activeTables[t.ID] {
			return shared.InvalidState("Table %s has an order in progress", t.ID)
		}
	}

	released := make([]uuid.UUID, 0, len(members))
	for _, t := range members {
		if t.TableGroupID == nil || *t.TableGroupID != g.ID {
			continue
		}
		t.leaveGroup()
		released = append(released, t.ID)
	}

	g.AddDomainEvent(NewTableGroupDissolvedEvent(g, released))
	return nil
}
