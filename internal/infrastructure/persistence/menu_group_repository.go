package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/infrastructure/persistence/models"
)

// GormMenuGroupRepository implements MenuGroupRepository using GORM
type GormMenuGroupRepository struct {
	db *gorm.DB
}

// NewGormMenuGroupRepository creates a new GormMenuGroupRepository
func NewGormMenuGroupRepository(db *gorm.DB) *GormMenuGroupRepository {
	return &GormMenuGroupRepository{db: db}
}

// ExistsByID checks whether a menu group exists
func (r *GormMenuGroupRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MenuGroupModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check menu group: %w", err)
	}
	return count > 0, nil
}

// FindAll returns every menu group in insertion order
func (r *GormMenuGroupRepository) FindAll(ctx context.Context) ([]catalog.MenuGroup, error) {
	var rows []models.MenuGroupModel
	if err := r.db.WithContext(ctx).Order(shared.ListOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list menu groups: %w", err)
	}
	out := make([]catalog.MenuGroup, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a menu group
func (r *GormMenuGroupRepository) Save(ctx context.Context, group *catalog.MenuGroup) error {
	if err := r.db.WithContext(ctx).Save(models.MenuGroupModelFromDomain(group)).Error; err != nil {
		return fmt.Errorf("save menu group: %w", err)
	}
	return nil
}

var _ catalog.MenuGroupRepository = (*GormMenuGroupRepository)(nil)
