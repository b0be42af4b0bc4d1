package table

import (
	"context"

	"github.com/google/uuid"
)

// OrderTableRepository defines the interface for table persistence.
// The ForUpdate variants lock the returned rows until the surrounding
// transaction ends and return them ordered by id.
type OrderTableRepository interface {
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*OrderTable, error)

	// FindByIDsForUpdate returns the tables that exist among ids
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*OrderTable, error)

	// FindByTableGroupID returns the current members of a group
	FindByTableGroupID(ctx context.Context, groupID uuid.UUID) ([]*OrderTable, error)
	FindByTableGroupIDForUpdate(ctx context.Context, groupID uuid.UUID) ([]*OrderTable, error)

	// FindAll returns every table in insertion order
	FindAll(ctx context.Context) ([]OrderTable, error)

	Save(ctx context.Context, table *OrderTable) error
	SaveAll(ctx context.Context, tables []*OrderTable) error
}

// TableGroupRepository defines the interface for table group persistence
type TableGroupRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TableGroup, error)
	Save(ctx context.Context, group *TableGroup) error
}
