package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kitchenpos/backend/internal/domain/shared"
)

// BaseModel provides the id and timestamp columns of every aggregate table.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToAggregateRoot converts BaseModel to a domain BaseAggregateRoot with no
// pending events
func (m *BaseModel) ToAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func baseFromDomain(e shared.BaseEntity) BaseModel {
	return BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

// All returns every model in migration order, parents first.
func All() []any {
	return []any{
		&ProductModel{},
		&MenuGroupModel{},
		&MenuModel{},
		&MenuProductModel{},
		&TableGroupModel{},
		&TableGroupMemberModel{},
		&OrderTableModel{},
		&OrderModel{},
		&OrderLineItemModel{},
	}
}
