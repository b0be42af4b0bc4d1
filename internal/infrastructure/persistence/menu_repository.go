package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/infrastructure/persistence/models"
)

// GormMenuRepository implements MenuRepository using GORM
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new GormMenuRepository
func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

func (r *GormMenuRepository) withProducts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	})
}

// FindByIDs returns the menus that exist among ids with their products
func (r *GormMenuRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Menu, error) {
	if len(ids) == 0 {
		return []catalog.Menu{}, nil
	}
	var rows []models.MenuModel
	if err := r.withProducts(ctx).Where("id IN ?", ids).Order(shared.ListOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find menus: %w", err)
	}
	return menusToDomain(rows), nil
}

// FindAll returns every menu in insertion order
func (r *GormMenuRepository) FindAll(ctx context.Context) ([]catalog.Menu, error) {
	var rows []models.MenuModel
	if err := r.withProducts(ctx).Order(shared.ListOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return menusToDomain(rows), nil
}

// Save writes the menu row then replaces its product lines
func (r *GormMenuRepository) Save(ctx context.Context, menu *catalog.Menu) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(models.MenuModelFromDomain(menu)).Error; err != nil {
			return fmt.Errorf("save menu: %w", err)
		}

		keep := make([]uuid.UUID, len(menu.Products))
		for i, p := range menu.Products {
			keep[i] = p.ID
		}
		stale := tx.Where("menu_id = ?", menu.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&models.MenuProductModel{}).Error; err != nil {
			return fmt.Errorf("prune menu products: %w", err)
		}

		for i := range menu.Products {
			menu.Products[i].MenuID = menu.ID
			row := models.MenuProductModelFromDomain(menu.Products[i])
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("save menu product: %w", err)
			}
		}
		return nil
	})
}

func menusToDomain(rows []models.MenuModel) []catalog.Menu {
	out := make([]catalog.Menu, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

var _ catalog.MenuRepository = (*GormMenuRepository)(nil)
