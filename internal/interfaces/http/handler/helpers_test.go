package handler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/kitchenpos/backend/internal/application/catalog"
	orderapp "github.com/kitchenpos/backend/internal/application/order"
	tableapp "github.com/kitchenpos/backend/internal/application/table"
	"github.com/kitchenpos/backend/internal/interfaces/http/middleware"
	"github.com/kitchenpos/backend/internal/testutil"
)

// testServer wires real services over repository mocks
type testServer struct {
	engine    *gin.Engine
	repos     *testutil.Repos
	publisher *testutil.RecordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	middleware.SetupValidator()

	repos := testutil.NewRepos()
	pub := &testutil.RecordingPublisher{}
	txScope := repos.Scope()
	log := zap.NewNop()

	catalogHandler := NewCatalogHandler(
		catalogapp.NewProductService(repos.Products, txScope),
		catalogapp.NewMenuGroupService(repos.MenuGroups, txScope),
		catalogapp.NewMenuService(repos.Menus, txScope, pub, log),
	)
	tableHandler := NewTableHandler(
		tableapp.NewTableService(repos.Tables, txScope, pub, log),
		tableapp.NewTableGroupService(repos.Groups, repos.Tables, txScope, pub, log),
	)
	orderHandler := NewOrderHandler(orderapp.NewOrderService(repos.Orders, txScope, pub, log))

	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api/v1")
	api.POST("/products", catalogHandler.CreateProduct)
	api.GET("/products", catalogHandler.ListProducts)
	api.POST("/menu-groups", catalogHandler.CreateMenuGroup)
	api.GET("/menu-groups", catalogHandler.ListMenuGroups)
	api.POST("/menus", catalogHandler.CreateMenu)
	api.GET("/menus", catalogHandler.ListMenus)
	api.POST("/tables", tableHandler.CreateTable)
	api.GET("/tables", tableHandler.ListTables)
	api.PUT("/tables/:id/empty", tableHandler.ChangeEmpty)
	api.PUT("/tables/:id/number-of-guests", tableHandler.ChangeNumberOfGuests)
	api.POST("/table-groups", tableHandler.CreateGroup)
	api.GET("/table-groups/:id", tableHandler.GetGroup)
	api.DELETE("/table-groups/:id", tableHandler.Ungroup)
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders", orderHandler.List)
	api.PUT("/orders/:id/order-status", orderHandler.ChangeOrderStatus)

	t.Cleanup(func() { repos.AssertExpectations(t) })
	return &testServer{engine: r, repos: repos, publisher: pub}
}

func (s *testServer) do(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(method, path, testutil.ToJSONReader(t, body))
}

func (s *testServer) doRaw(method, path, raw string) *httptest.ResponseRecorder {
	return s.do(method, path, strings.NewReader(raw))
}
