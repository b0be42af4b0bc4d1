// Package router assembles the gin engine: the middleware chain and the
// POS API routes.
package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/infrastructure/config"
	"github.com/kitchenpos/backend/internal/infrastructure/logger"
	"github.com/kitchenpos/backend/internal/infrastructure/telemetry"
	"github.com/kitchenpos/backend/internal/interfaces/http/handler"
	"github.com/kitchenpos/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a set of routes under the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects registrars and mounts them under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
	apiUse     []gin.HandlerFunc
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAPIMiddleware adds middleware that runs only on versioned API routes
func WithAPIMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.apiUse = append(r.apiUse, mw...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be mounted by Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every registrar and returns the API group
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group("/api/"+r.apiVersion, r.apiUse...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return api
}

// DomainGroup is a prefixed set of routes belonging to one aggregate
type DomainGroup struct {
	name   string
	prefix string
	routes []routeDefinition
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("GET", path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("POST", path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("PUT", path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("DELETE", path, handlers)
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Handlers bundles the HTTP handlers the engine routes to
type Handlers struct {
	Catalog *handler.CatalogHandler
	Table   *handler.TableHandler
	Order   *handler.OrderHandler
	System  *handler.SystemHandler
}

// Options configures the engine's middleware chain
type Options struct {
	Logger      *zap.Logger
	HTTP        config.HTTPConfig
	Tracing     middleware.TracingConfig
	Metrics     *telemetry.HTTPMetrics
	Idempotency config.IdempotencyConfig
	// IdempotencyStore may be nil, which disables the Idempotency-Key guard
	IdempotencyStore shared.IdempotencyStore
	Production       bool
}

// NewEngine builds the gin engine with the full middleware chain and all
// POS routes.
func NewEngine(opts Options, h Handlers) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = opts.HTTP.CORSAllowOrigins
	if len(opts.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = opts.HTTP.CORSAllowMethods
	}
	if len(opts.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = opts.HTTP.CORSAllowHeaders
	}
	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = opts.Production

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.Tracing(opts.Tracing),
		middleware.SpanEnricher(),
		middleware.HTTPMetrics(opts.Metrics),
		logger.GinMiddleware(log),
		middleware.SecureWithConfig(security),
		middleware.CORSWithConfig(cors),
	)
	if opts.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(opts.HTTP.MaxBodySize))
	}

	var apiUse []gin.HandlerFunc
	if opts.Idempotency.Enabled && opts.IdempotencyStore != nil {
		apiUse = append(apiUse, middleware.Idempotency(opts.IdempotencyStore, opts.Idempotency.TTL, log))
	}

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	r := NewRouter(engine, WithAPIMiddleware(apiUse...))
	for _, group := range domainGroups(h) {
		r.Register(group)
	}
	api := r.Setup()
	if h.System != nil {
		api.GET("/ping", h.System.Ping)
	}
	return engine, nil
}

func domainGroups(h Handlers) []*DomainGroup {
	var groups []*DomainGroup
	if c := h.Catalog; c != nil {
		groups = append(groups,
			NewDomainGroup("products", "/products").
				POST("", c.CreateProduct).
				GET("", c.ListProducts),
			NewDomainGroup("menu-groups", "/menu-groups").
				POST("", c.CreateMenuGroup).
				GET("", c.ListMenuGroups),
			NewDomainGroup("menus", "/menus").
				POST("", c.CreateMenu).
				GET("", c.ListMenus),
		)
	}
	if t := h.Table; t != nil {
		groups = append(groups,
			NewDomainGroup("tables", "/tables").
				POST("", t.CreateTable).
				GET("", t.ListTables).
				PUT("/:id/empty", t.ChangeEmpty).
				PUT("/:id/number-of-guests", t.ChangeNumberOfGuests),
			NewDomainGroup("table-groups", "/table-groups").
				POST("", t.CreateGroup).
				GET("/:id", t.GetGroup).
				DELETE("/:id", t.Ungroup),
		)
	}
	if o := h.Order; o != nil {
		groups = append(groups,
			NewDomainGroup("orders", "/orders").
				POST("", o.Create).
				GET("", o.List).
				PUT("/:id/order-status", o.ChangeOrderStatus),
		)
	}
	return groups
}
