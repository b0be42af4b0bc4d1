package table

import (
	"time"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/shared"
)

// OrderTable is a physical dining table. TableGroupID is set while the
// table is a member of a table group.
type OrderTable struct {
	shared.BaseAggregateRoot
	NumberOfGuests int
	Empty          bool
	TableGroupID   *uuid.UUID
}

// NewOrderTable creates a new ungrouped table
func NewOrderTable(numberOfGuests int, empty bool) (*OrderTable, error) {
	if err := ValidateNumberOfGuests(numberOfGuests); err != nil {
		return nil, err
	}
	return &OrderTable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		NumberOfGuests:    numberOfGuests,
		Empty:             empty,
	}, nil
}

// ValidateNumberOfGuests rejects negative guest counts
func ValidateNumberOfGuests(n int) error {
	if n < 0 {
		return shared.InvalidInput("Number of guests cannot be negative: %d", n)
	}
	return nil
}

// IsGrouped reports whether the table belongs to a table group
func (t *OrderTable) IsGrouped() bool {
	return t.TableGroupID != nil
}

// ChangeEmpty sets the occupancy flag. hasActiveOrder tells whether the
// table has an order that is still COOKING or MEAL.
func (t *OrderTable) ChangeEmpty(empty, hasActiveOrder bool) error {
	if t.IsGrouped() {
		return shared.InvalidState("Table %s belongs to table group %s", t.ID, *t.TableGroupID)
	}
	if hasActiveOrder {
		return shared.InvalidState("Table %s has an order in progress", t.ID)
	}

	changed := t.Empty != empty
	t.Empty = empty
	t.UpdatedAt = time.Now()
	if changed {
		t.AddDomainEvent(NewTableOccupancyChangedEvent(t))
	}
	return nil
}

// ChangeNumberOfGuests records how many guests sit at an occupied table
func (t *OrderTable) ChangeNumberOfGuests(n int) error {
	if err := ValidateNumberOfGuests(n); err != nil {
		return err
	}
	if t.Empty {
		return shared.InvalidState("Table %s is empty", t.ID)
	}
	t.NumberOfGuests = n
	t.UpdatedAt = time.Now()
	return nil
}

// joinGroup attaches the table to a group and marks it occupied
func (t *OrderTable) joinGroup(groupID uuid.UUID) {
	id := groupID
	t.TableGroupID = &id
	t.Empty = false
	t.UpdatedAt = time.Now()
}

// leaveGroup detaches the table; the occupancy flag is left as is
func (t *OrderTable) leaveGroup() {
	t.TableGroupID = nil
	t.UpdatedAt = time.Now()
}
