package models

import (
	"github.com/google/uuid"

	"github.com/kitchenpos/backend/internal/domain/table"
)

// OrderTableModel is the persistence model for table.OrderTable.
type OrderTableModel struct {
	BaseModel
	NumberOfGuests int        `gorm:"not null;default:0"`
	Empty          bool       `gorm:"not null"`
	TableGroupID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (OrderTableModel) TableName() string { return "order_tables" }

// ToDomain converts the persistence model to a domain OrderTable.
func (m *OrderTableModel) ToDomain() *table.OrderTable {
	return &table.OrderTable{
		BaseAggregateRoot: m.ToAggregateRoot(),
		NumberOfGuests:    m.NumberOfGuests,
		Empty:             m.Empty,
		TableGroupID:      m.TableGroupID,
	}
}

// OrderTableModelFromDomain creates a persistence model from a domain OrderTable.
func OrderTableModelFromDomain(t *table.OrderTable) *OrderTableModel {
	return &OrderTableModel{
		BaseModel:      baseFromDomain(t.BaseEntity),
		NumberOfGuests: t.NumberOfGuests,
		Empty:          t.Empty,
		TableGroupID:   t.TableGroupID,
	}
}

// TableGroupModel is the persistence model for table.TableGroup.
type TableGroupModel struct {
	BaseModel
	Members []TableGroupMemberModel `gorm:"foreignKey:TableGroupID"`
}

// TableName returns the table name for GORM
func (TableGroupModel) TableName() string { return "table_groups" }

// ToDomain converts the persistence model to a domain TableGroup. Members
// must be preloaded in seq order.
func (m *TableGroupModel) ToDomain() *table.TableGroup {
	ids := make([]uuid.UUID, len(m.Members))
	for i, member := range m.Members {
		ids[i] = member.OrderTableID
	}
	return &table.TableGroup{
		BaseAggregateRoot: m.ToAggregateRoot(),
		TableIDs:          ids,
	}
}

// TableGroupModelFromDomain creates a persistence model with the member
// rows of a domain TableGroup.
func TableGroupModelFromDomain(g *table.TableGroup) *TableGroupModel {
	members := make([]TableGroupMemberModel, len(g.TableIDs))
	for i, id := range g.TableIDs {
		members[i] = TableGroupMemberModel{TableGroupID: g.ID, OrderTableID: id, Seq: i}
	}
	return &TableGroupModel{BaseModel: baseFromDomain(g.BaseEntity), Members: members}
}

// TableGroupMemberModel records which tables a group was formed with.
// Rows outlive ungrouping; current membership lives on order_tables.
type TableGroupMemberModel struct {
	TableGroupID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderTableID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq          int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TableGroupMemberModel) TableName() string { return "table_group_members" }
