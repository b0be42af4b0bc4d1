package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/table"
	"github.com/kitchenpos/backend/internal/infrastructure/persistence/models"
)

// GormOrderTableRepository implements OrderTableRepository using GORM
type GormOrderTableRepository struct {
	db *gorm.DB
}

// NewGormOrderTableRepository creates a new GormOrderTableRepository
func NewGormOrderTableRepository(db *gorm.DB) *GormOrderTableRepository {
	return &GormOrderTableRepository{db: db}
}

func (r *GormOrderTableRepository) forUpdate(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Order("id")
}

// FindByIDForUpdate finds a table by ID and locks its row
func (r *GormOrderTableRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*table.OrderTable, error) {
	var row models.OrderTableModel
	if err := r.forUpdate(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, notFoundOr(err, "order table", id)
	}
	return row.ToDomain(), nil
}

// FindByIDsForUpdate locks and returns the tables that exist among ids
func (r *GormOrderTableRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*table.OrderTable, error) {
	if len(ids) == 0 {
		return []*table.OrderTable{}, nil
	}
	var rows []models.OrderTableModel
	if err := r.forUpdate(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lock order tables: %w", err)
	}
	return tablePointers(rows), nil
}

// FindByTableGroupID returns the current members of a group
func (r *GormOrderTableRepository) FindByTableGroupID(ctx context.Context, groupID uuid.UUID) ([]*table.OrderTable, error) {
	var rows []models.OrderTableModel
	if err := r.db.WithContext(ctx).Where("table_group_id = ?", groupID).Order(shared.ListOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find group tables: %w", err)
	}
	return tablePointers(rows), nil
}

// FindByTableGroupIDForUpdate locks and returns the current members of a group
func (r *GormOrderTableRepository) FindByTableGroupIDForUpdate(ctx context.Context, groupID uuid.UUID) ([]*table.OrderTable, error) {
	var rows []models.OrderTableModel
	if err := r.forUpdate(ctx).Where("table_group_id = ?", groupID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lock group tables: %w", err)
	}
	return tablePointers(rows), nil
}

// FindAll returns every table in insertion order
func (r *GormOrderTableRepository) FindAll(ctx context.Context) ([]table.OrderTable, error) {
	var rows []models.OrderTableModel
	if err := r.db.WithContext(ctx).Order(shared.ListOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list order tables: %w", err)
	}
	out := make([]table.OrderTable, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a table. Save writes every column, so a cleared
// TableGroupID is stored as NULL.
func (r *GormOrderTableRepository) Save(ctx context.Context, t *table.OrderTable) error {
	if err := r.db.WithContext(ctx).Save(models.OrderTableModelFromDomain(t)).Error; err != nil {
		return fmt.Errorf("save order table: %w", err)
	}
	return nil
}

// SaveAll saves every table in order
func (r *GormOrderTableRepository) SaveAll(ctx context.Context, tables []*table.OrderTable) error {
	for _, t := range tables {
		if err := r.Save(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func tablePointers(rows []models.OrderTableModel) []*table.OrderTable {
	out := make([]*table.OrderTable, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

var _ table.OrderTableRepository = (*GormOrderTableRepository)(nil)
