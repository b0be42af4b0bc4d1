package scope

import (
	"context"

	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/order"
	"github.com/kitchenpos/backend/internal/domain/table"
)

// TransactionScope provides transactional access to the POS repositories.
// All repository operations made inside fn share one database transaction
// that commits when fn returns nil and rolls back otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a transaction.
//
// Locking notes:
//   - OrderTableRepo ForUpdate finders lock table rows; CreateGroup, Ungroup,
//     ChangeEmpty, ChangeNumberOfGuests and order placement all go through them
//     so a table cannot be grouped, emptied and ordered against at once.
//   - OrderRepo.FindByIDForUpdate locks the order row for status changes.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	MenuGroupRepo() catalog.MenuGroupRepository
	MenuRepo() catalog.MenuRepository
	OrderTableRepo() table.OrderTableRepository
	TableGroupRepo() table.TableGroupRepository
	OrderRepo() order.OrderRepository
}

// Repositories groups repository implementations for NoOpTransactionScope
type Repositories struct {
	Products   catalog.ProductRepository
	MenuGroups catalog.MenuGroupRepository
	Menus      catalog.MenuRepository
	Tables     table.OrderTableRepository
	Groups     table.TableGroupRepository
	Orders     order.OrderRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Used by unit tests.
type NoOpTransactionScope struct {
	repos Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository     { return s.repos.Products }
func (s *NoOpTransactionScope) MenuGroupRepo() catalog.MenuGroupRepository { return s.repos.MenuGroups }
func (s *NoOpTransactionScope) MenuRepo() catalog.MenuRepository           { return s.repos.Menus }
func (s *NoOpTransactionScope) OrderTableRepo() table.OrderTableRepository { return s.repos.Tables }
func (s *NoOpTransactionScope) TableGroupRepo() table.TableGroupRepository { return s.repos.Groups }
func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository           { return s.repos.Orders }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
