package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/kitchenpos/backend/internal/application/catalog"
	orderapp "github.com/kitchenpos/backend/internal/application/order"
	tableapp "github.com/kitchenpos/backend/internal/application/table"
	"github.com/kitchenpos/backend/internal/domain/order"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/table"
	"github.com/kitchenpos/backend/internal/testutil"
)

// posServices wires the application services over a sqlite database
type posServices struct {
	products   *catalogapp.ProductService
	menuGroups *catalogapp.MenuGroupService
	menus      *catalogapp.MenuService
	tables     *tableapp.TableService
	groups     *tableapp.TableGroupService
	orders     *orderapp.OrderService
	publisher  *testutil.RecordingPublisher
}

func newPOSServices(t *testing.T) *posServices {
	t.Helper()

	db := newTestDatabase(t)
	txScope := NewGormTransactionScope(db.DB)
	pub := &testutil.RecordingPublisher{}
	log := zap.NewNop()

	tableRepo := NewGormOrderTableRepository(db.DB)
	return &posServices{
		products:   catalogapp.NewProductService(NewGormProductRepository(db.DB), txScope),
		menuGroups: catalogapp.NewMenuGroupService(NewGormMenuGroupRepository(db.DB), txScope),
		menus:      catalogapp.NewMenuService(NewGormMenuRepository(db.DB), txScope, pub, log),
		tables:     tableapp.NewTableService(tableRepo, txScope, pub, log),
		groups:     tableapp.NewTableGroupService(NewGormTableGroupRepository(db.DB), tableRepo, txScope, pub, log),
		orders:     orderapp.NewOrderService(NewGormOrderRepository(db.DB), txScope, pub, log),
		publisher:  pub,
	}
}

func tablesByID(t *testing.T, s *posServices) map[uuid.UUID]tableapp.TableResponse {
	t.Helper()
	all, err := s.tables.List(context.Background())
	require.NoError(t, err)
	out := make(map[uuid.UUID]tableapp.TableResponse, len(all))
	for _, tbl := range all {
		out[tbl.ID] = tbl
	}
	return out
}

func TestScenario_MenuPriceCeiling(t *testing.T) {
	ctx := context.Background()
	s := newPOSServices(t)

	pizza, err := s.products.Create(ctx, catalogapp.CreateProductRequest{Name: "Pizza", Price: decimalPtr("10000")})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, pizza.ID)

	group, err := s.menuGroups.Create(ctx, catalogapp.CreateMenuGroupRequest{Name: "Chicken"})
	require.NoError(t, err)

	items := []catalogapp.MenuProductRequest{{ProductID: pizza.ID, Quantity: 1}}
	menu, err := s.menus.Create(ctx, catalogapp.CreateMenuRequest{
		Name:         "Fried Chicken Menu",
		Price:        decimalPtr("1000"),
		MenuGroupID:  group.ID,
		MenuProducts: items,
	})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", menu.Price.String())

	_, err = s.menus.Create(ctx, catalogapp.CreateMenuRequest{
		Name:         "Fried Chicken Menu",
		Price:        decimalPtr("20000"),
		MenuGroupID:  group.ID,
		MenuProducts: items,
	})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = s.menus.Create(ctx, catalogapp.CreateMenuRequest{
		Name:         "Ghost Menu",
		Price:        decimalPtr("1000"),
		MenuGroupID:  uuid.New(),
		MenuProducts: items,
	})
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	menus, err := s.menus.List(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, menu.ID, menus[0].ID)
	require.Len(t, menus[0].MenuProducts, 1)
}

func TestScenario_MenuPriceIsStoredExactly(t *testing.T) {
	ctx := context.Background()
	s := newPOSServices(t)

	product, err := s.products.Create(ctx, catalogapp.CreateProductRequest{Name: "Pizza", Price: decimalPtr("10")})
	require.NoError(t, err)
	group, err := s.menuGroups.Create(ctx, catalogapp.CreateMenuGroupRequest{Name: "Pizza"})
	require.NoError(t, err)
	items := []catalogapp.MenuProductRequest{{ProductID: product.ID, Quantity: 1}}

	_, err = s.menus.Create(ctx, catalogapp.CreateMenuRequest{
		Name:         "Pizza set",
		Price:        decimalPtr("9.999"),
		MenuGroupID:  group.ID,
		MenuProducts: items,
	})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = s.products.Create(ctx, catalogapp.CreateProductRequest{Name: "Cola", Price: decimalPtr("1.005")})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	input := decimalPtr("9.99")
	created, err := s.menus.Create(ctx, catalogapp.CreateMenuRequest{
		Name:         "Pizza set",
		Price:        input,
		MenuGroupID:  group.ID,
		MenuProducts: items,
	})
	require.NoError(t, err)
	assert.True(t, created.Price.Amount().Equal(*input))

	menus, err := s.menus.List(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.True(t, menus[0].Price.Amount().Equal(*input))

	products, err := s.products.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestScenario_GroupingAndRegrouping(t *testing.T) {
	ctx := context.Background()
	s := newPOSServices(t)

	newEmptyTable := func() uuid.UUID {
		resp, err := s.tables.Create(ctx, tableapp.CreateTableRequest{Empty: true})
		require.NoError(t, err)
		return resp.ID
	}
	t1, t2, t3 := newEmptyTable(), newEmptyTable(), newEmptyTable()

	group, err := s.groups.Create(ctx, tableapp.CreateTableGroupRequest{OrderTableIDs: []uuid.UUID{t1, t2}})
	require.NoError(t, err)
	require.Len(t, group.OrderTables, 2)
	for _, m := range group.OrderTables {
		assert.False(t, m.Empty)
	}

	_, err = s.groups.Create(ctx, tableapp.CreateTableGroupRequest{OrderTableIDs: []uuid.UUID{t2, t3}})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	// the failed attempt must not have touched the third table
	byID := tablesByID(t, s)
	require.Len(t, byID, 3)
	assert.True(t, byID[t3].Empty)
	assert.Nil(t, byID[t3].TableGroupID)

	_, err = s.tables.ChangeEmpty(ctx, t1, true)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	require.NoError(t, s.groups.Ungroup(ctx, group.ID))
	byID = tablesByID(t, s)
	for _, id := range []uuid.UUID{t1, t2} {
		assert.Nil(t, byID[id].TableGroupID)
		assert.False(t, byID[id].Empty)
	}

	err = s.groups.Ungroup(ctx, uuid.New())
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestScenario_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newPOSServices(t)

	product, err := s.products.Create(ctx, catalogapp.CreateProductRequest{Name: "Fried chicken", Price: decimalPtr("16000")})
	require.NoError(t, err)
	group, err := s.menuGroups.Create(ctx, catalogapp.CreateMenuGroupRequest{Name: "Chicken"})
	require.NoError(t, err)
	menu, err := s.menus.Create(ctx, catalogapp.CreateMenuRequest{
		Name:         "Fried chicken",
		Price:        decimalPtr("16000"),
		MenuGroupID:  group.ID,
		MenuProducts: []catalogapp.MenuProductRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	tbl, err := s.tables.Create(ctx, tableapp.CreateTableRequest{Empty: true})
	require.NoError(t, err)

	req := orderapp.CreateOrderRequest{
		OrderTableID:   tbl.ID,
		OrderLineItems: []orderapp.OrderLineItemRequest{{MenuID: menu.ID, Quantity: 2}},
	}
	_, err = s.orders.Create(ctx, req)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	_, err = s.tables.ChangeEmpty(ctx, tbl.ID, false)
	require.NoError(t, err)

	placed, err := s.orders.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "COOKING", placed.OrderStatus)

	// an order in progress keeps the table occupied
	_, err = s.tables.ChangeEmpty(ctx, tbl.ID, true)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	done, err := s.orders.ChangeOrderStatus(ctx, placed.ID, orderapp.ChangeOrderStatusRequest{OrderStatus: "COMPLETION"})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETION", done.OrderStatus)

	_, err = s.orders.ChangeOrderStatus(ctx, placed.ID, orderapp.ChangeOrderStatusRequest{OrderStatus: "COOKING"})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	_, err = s.tables.ChangeEmpty(ctx, tbl.ID, true)
	assert.NoError(t, err)

	orders, err := s.orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "COMPLETION", orders[0].OrderStatus)
	require.Len(t, orders[0].OrderLineItems, 1)
	assert.Equal(t, int64(2), orders[0].OrderLineItems[0].Quantity)

	types := s.publisher.EventTypes()
	assert.Contains(t, types, order.EventTypeOrderPlaced)
	assert.Contains(t, types, order.EventTypeOrderStatusChanged)
	assert.Contains(t, types, table.EventTypeTableOccupancyChanged)
}
