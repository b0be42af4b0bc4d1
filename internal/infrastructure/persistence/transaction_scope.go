package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/kitchenpos/backend/internal/application/scope"
	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/order"
	"github.com/kitchenpos/backend/internal/domain/table"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. The transaction is
// rolled back when fn returns an error or panics.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos scope.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) MenuGroupRepo() catalog.MenuGroupRepository {
	return NewGormMenuGroupRepository(r.tx)
}

func (r *gormTransactionalRepositories) MenuRepo() catalog.MenuRepository {
	return NewGormMenuRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderTableRepo() table.OrderTableRepository {
	return NewGormOrderTableRepository(r.tx)
}

func (r *gormTransactionalRepositories) TableGroupRepo() table.TableGroupRepository {
	return NewGormTableGroupRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderRepo() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

var _ scope.TransactionScope = (*GormTransactionScope)(nil)
var _ scope.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
