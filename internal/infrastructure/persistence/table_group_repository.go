package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kitchenpos/backend/internal/domain/table"
	"github.com/kitchenpos/backend/internal/infrastructure/persistence/models"
)

// GormTableGroupRepository implements TableGroupRepository using GORM
type GormTableGroupRepository struct {
	db *gorm.DB
}

// NewGormTableGroupRepository creates a new GormTableGroupRepository
func NewGormTableGroupRepository(db *gorm.DB) *GormTableGroupRepository {
	return &GormTableGroupRepository{db: db}
}

// FindByID loads a group with the tables it was formed with
func (r *GormTableGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*table.TableGroup, error) {
	var row models.TableGroupModel
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "table group", id)
	}
	return row.ToDomain(), nil
}

// Save writes the group row and its member rows. Member rows are keyed by
// (group, table) and never change after creation, so existing ones are left
// alone.
func (r *GormTableGroupRepository) Save(ctx context.Context, group *table.TableGroup) error {
	row := models.TableGroupModelFromDomain(group)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(row).Error; err != nil {
			return fmt.Errorf("save table group: %w", err)
		}
		if len(row.Members) == 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row.Members).Error; err != nil {
			return fmt.Errorf("save table group members: %w", err)
		}
		return nil
	})
}

var _ table.TableGroupRepository = (*GormTableGroupRepository)(nil)
