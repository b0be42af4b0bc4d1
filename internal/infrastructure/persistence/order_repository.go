package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kitchenpos/backend/internal/domain/order"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func withLineItems(db *gorm.DB) *gorm.DB {
	return db.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	})
}

// FindByIDForUpdate locks the order row and loads its line items
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var row models.OrderModel
	err := withLineItems(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, notFoundOr(err, "order", id)
	}
	return row.ToDomain(), nil
}

// FindAll returns every order in insertion order
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	var rows []models.OrderModel
	if err := withLineItems(r.db.WithContext(ctx)).Order(shared.ListOrder).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]order.Order, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindActiveTableIDs returns the tables among tableIDs with a COOKING or MEAL order
func (r *GormOrderRepository) FindActiveTableIDs(ctx context.Context, tableIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(tableIDs) == 0 {
		return []uuid.UUID{}, nil
	}
	statuses := make([]string, len(order.ActiveStatuses))
	for i, s := range order.ActiveStatuses {
		statuses[i] = s.String()
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Distinct("order_table_id").
		Where("order_table_id IN ? AND order_status IN ?", tableIDs, statuses).
		Order("order_table_id").
		Pluck("order_table_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("find active tables: %w", err)
	}
	return ids, nil
}

// Save persists the order and replaces its line items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(models.OrderModelFromDomain(o)).Error; err != nil {
			return fmt.Errorf("save order: %w", err)
		}

		keep := make([]uuid.UUID, len(o.LineItems))
		for i, li := range o.LineItems {
			keep[i] = li.ID
		}
		stale := tx.Where("order_id = ?", o.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&models.OrderLineItemModel{}).Error; err != nil {
			return fmt.Errorf("prune order line items: %w", err)
		}

		for i := range o.LineItems {
			o.LineItems[i].OrderID = o.ID
			row := models.OrderLineItemModelFromDomain(o.LineItems[i])
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("save order line item: %w", err)
			}
		}
		return nil
	})
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)
