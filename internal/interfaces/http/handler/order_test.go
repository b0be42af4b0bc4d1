package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	orderapp "github.com/kitchenpos/backend/internal/application/order"
	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/order"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/testutil"
)

func mustMenu(t *testing.T, price string) catalog.Menu {
	t.Helper()
	product := mustProduct(t, "Fried chicken", "16000")
	d := decimal.RequireFromString(price)
	draft, err := catalog.NewMenuDraft("Fried chicken", &d, uuid.New(),
		[]catalog.MenuProductLine{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)
	menu, err := draft.Build([]catalog.Product{product})
	require.NoError(t, err)
	menu.ClearDomainEvents()
	return *menu
}

func TestOrderHandler_Create(t *testing.T) {
	menu := mustMenu(t, "16000")

	t.Run("places a cooking order", func(t *testing.T) {
		s := newTestServer(t)
		tbl := mustTable(t, 2, false)
		s.repos.Menus.On("FindByIDs", mock.Anything, []uuid.UUID{menu.ID}).Return([]catalog.Menu{menu}, nil)
		s.repos.Tables.On("FindByIDForUpdate", mock.Anything, tbl.ID).Return(tbl, nil)
		s.repos.Orders.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)

		w := s.doJSON(t, http.MethodPost, "/api/v1/orders", map[string]any{
			"order_table_id":   tbl.ID,
			"order_line_items": []map[string]any{{"menu_id": menu.ID, "quantity": 2}},
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := testutil.DecodeResponse[orderapp.OrderResponse](t, w)
		assert.Equal(t, "COOKING", resp.Data.OrderStatus)
		assert.Equal(t, tbl.ID, resp.Data.OrderTableID)
		require.Len(t, resp.Data.OrderLineItems, 1)
		assert.Equal(t, []string{order.EventTypeOrderPlaced}, s.publisher.EventTypes())
	})

	t.Run("empty table rejects", func(t *testing.T) {
		s := newTestServer(t)
		tbl := mustTable(t, 0, true)
		s.repos.Menus.On("FindByIDs", mock.Anything, []uuid.UUID{menu.ID}).Return([]catalog.Menu{menu}, nil)
		s.repos.Tables.On("FindByIDForUpdate", mock.Anything, tbl.ID).Return(tbl, nil)

		w := s.doJSON(t, http.MethodPost, "/api/v1/orders", map[string]any{
			"order_table_id":   tbl.ID,
			"order_line_items": []map[string]any{{"menu_id": menu.ID, "quantity": 1}},
		})

		testutil.AssertErrorCode(t, w, http.StatusUnprocessableEntity, "ERR_INVALID_STATE")
		s.repos.Orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("no line items rejects before lookup", func(t *testing.T) {
		s := newTestServer(t)

		w := s.doJSON(t, http.MethodPost, "/api/v1/orders", map[string]any{
			"order_table_id":   uuid.New(),
			"order_line_items": []map[string]any{},
		})

		testutil.AssertErrorCode(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")
	})

	t.Run("unknown menu", func(t *testing.T) {
		s := newTestServer(t)
		missing := uuid.New()
		s.repos.Menus.On("FindByIDs", mock.Anything, []uuid.UUID{missing}).Return([]catalog.Menu{}, nil)

		w := s.doJSON(t, http.MethodPost, "/api/v1/orders", map[string]any{
			"order_table_id":   uuid.New(),
			"order_line_items": []map[string]any{{"menu_id": missing, "quantity": 1}},
		})

		testutil.AssertErrorCode(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")
	})
}

func TestOrderHandler_ChangeOrderStatus(t *testing.T) {
	menu := mustMenu(t, "16000")
	place := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.PlaceOrder(mustTable(t, 2, false),
			[]order.LineRequest{{MenuID: menu.ID, Quantity: 1}}, []catalog.Menu{menu})
		require.NoError(t, err)
		o.ClearDomainEvents()
		return o
	}

	t.Run("cooking to meal", func(t *testing.T) {
		s := newTestServer(t)
		o := place(t)
		s.repos.Orders.On("FindByIDForUpdate", mock.Anything, o.ID).Return(o, nil)
		s.repos.Orders.On("Save", mock.Anything, o).Return(nil)

		w := s.doJSON(t, http.MethodPut, "/api/v1/orders/"+o.ID.String()+"/order-status", map[string]any{"order_status": "MEAL"})

		require.Equal(t, http.StatusOK, w.Code)
		resp := testutil.DecodeResponse[orderapp.OrderResponse](t, w)
		assert.Equal(t, "MEAL", resp.Data.OrderStatus)
		assert.Equal(t, []string{order.EventTypeOrderStatusChanged}, s.publisher.EventTypes())
	})

	t.Run("completed order is locked", func(t *testing.T) {
		s := newTestServer(t)
		o := place(t)
		require.NoError(t, o.ChangeStatus("COMPLETION"))
		o.ClearDomainEvents()
		s.repos.Orders.On("FindByIDForUpdate", mock.Anything, o.ID).Return(o, nil)

		w := s.doJSON(t, http.MethodPut, "/api/v1/orders/"+o.ID.String()+"/order-status", map[string]any{"order_status": "MEAL"})

		testutil.AssertErrorCode(t, w, http.StatusUnprocessableEntity, "ERR_INVALID_STATE")
	})

	t.Run("unknown status", func(t *testing.T) {
		s := newTestServer(t)
		o := place(t)
		s.repos.Orders.On("FindByIDForUpdate", mock.Anything, o.ID).Return(o, nil)

		w := s.doJSON(t, http.MethodPut, "/api/v1/orders/"+o.ID.String()+"/order-status", map[string]any{"order_status": "SERVED"})

		testutil.AssertErrorCode(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")
	})

	t.Run("unknown order", func(t *testing.T) {
		s := newTestServer(t)
		id := uuid.New()
		s.repos.Orders.On("FindByIDForUpdate", mock.Anything, id).Return(nil, shared.ErrNotFound)

		w := s.doJSON(t, http.MethodPut, "/api/v1/orders/"+id.String()+"/order-status", map[string]any{"order_status": "MEAL"})

		testutil.AssertErrorCode(t, w, http.StatusNotFound, "ERR_NOT_FOUND")
	})
}

func TestOrderHandler_List(t *testing.T) {
	s := newTestServer(t)
	s.repos.Orders.On("FindAll", mock.Anything).Return([]order.Order{}, nil)

	w := s.do(http.MethodGet, "/api/v1/orders", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := testutil.DecodeResponse[[]orderapp.OrderResponse](t, w)
	assert.Empty(t, resp.Data)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}
