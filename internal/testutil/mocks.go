package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/application/scope"
	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/order"
	"github.com/kitchenpos/backend/internal/domain/table"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockMenuGroupRepository is a mock implementation of catalog.MenuGroupRepository
type MockMenuGroupRepository struct {
	mock.Mock
}

func (m *MockMenuGroupRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMenuGroupRepository) FindAll(ctx context.Context) ([]catalog.MenuGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.MenuGroup), args.Error(1)
}

func (m *MockMenuGroupRepository) Save(ctx context.Context, group *catalog.MenuGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

// MockMenuRepository is a mock implementation of catalog.MenuRepository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Menu, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Menu), args.Error(1)
}

func (m *MockMenuRepository) FindAll(ctx context.Context) ([]catalog.Menu, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Menu), args.Error(1)
}

func (m *MockMenuRepository) Save(ctx context.Context, menu *catalog.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

// MockOrderTableRepository is a mock implementation of table.OrderTableRepository
type MockOrderTableRepository struct {
	mock.Mock
}

func (m *MockOrderTableRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*table.OrderTable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.OrderTable), args.Error(1)
}

func (m *MockOrderTableRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*table.OrderTable, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*table.OrderTable), args.Error(1)
}

func (m *MockOrderTableRepository) FindByTableGroupID(ctx context.Context, groupID uuid.UUID) ([]*table.OrderTable, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*table.OrderTable), args.Error(1)
}

func (m *MockOrderTableRepository) FindByTableGroupIDForUpdate(ctx context.Context, groupID uuid.UUID) ([]*table.OrderTable, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*table.OrderTable), args.Error(1)
}

func (m *MockOrderTableRepository) FindAll(ctx context.Context) ([]table.OrderTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]table.OrderTable), args.Error(1)
}

func (m *MockOrderTableRepository) Save(ctx context.Context, t *table.OrderTable) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockOrderTableRepository) SaveAll(ctx context.Context, tables []*table.OrderTable) error {
	args := m.Called(ctx, tables)
	return args.Error(0)
}

// MockTableGroupRepository is a mock implementation of table.TableGroupRepository
type MockTableGroupRepository struct {
	mock.Mock
}

func (m *MockTableGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*table.TableGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.TableGroup), args.Error(1)
}

func (m *MockTableGroupRepository) Save(ctx context.Context, group *table.TableGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindActiveTableIDs(ctx context.Context, tableIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tableIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

var (
	_ catalog.ProductRepository   = (*MockProductRepository)(nil)
	_ catalog.MenuGroupRepository = (*MockMenuGroupRepository)(nil)
	_ catalog.MenuRepository      = (*MockMenuRepository)(nil)
	_ table.OrderTableRepository  = (*MockOrderTableRepository)(nil)
	_ table.TableGroupRepository  = (*MockTableGroupRepository)(nil)
	_ order.OrderRepository       = (*MockOrderRepository)(nil)
)

// Repos bundles one mock per repository
type Repos struct {
	Products   *MockProductRepository
	MenuGroups *MockMenuGroupRepository
	Menus      *MockMenuRepository
	Tables     *MockOrderTableRepository
	Groups     *MockTableGroupRepository
	Orders     *MockOrderRepository
}

// NewRepos creates a fresh set of repository mocks
func NewRepos() *Repos {
	return &Repos{
		Products:   new(MockProductRepository),
		MenuGroups: new(MockMenuGroupRepository),
		Menus:      new(MockMenuRepository),
		Tables:     new(MockOrderTableRepository),
		Groups:     new(MockTableGroupRepository),
		Orders:     new(MockOrderRepository),
	}
}

// AssertExpectations asserts the expectations of every mock
func (r *Repos) AssertExpectations(t mock.TestingT) {
	r.Products.AssertExpectations(t)
	r.MenuGroups.AssertExpectations(t)
	r.Menus.AssertExpectations(t)
	r.Tables.AssertExpectations(t)
	r.Groups.AssertExpectations(t)
	r.Orders.AssertExpectations(t)
}

// Scope returns a NoOpTransactionScope over the mocks
func (r *Repos) Scope() *scope.NoOpTransactionScope {
	return scope.NewNoOpTransactionScope(scope.Repositories{
		Products:   r.Products,
		MenuGroups: r.MenuGroups,
		Menus:      r.Menus,
		Tables:     r.Tables,
		Groups:     r.Groups,
		Orders:     r.Orders,
	})
}
