package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	activityapp "github.com/kitchenpos/backend/internal/application/activity"
	catalogapp "github.com/kitchenpos/backend/internal/application/catalog"
	orderapp "github.com/kitchenpos/backend/internal/application/order"
	tableapp "github.com/kitchenpos/backend/internal/application/table"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/infrastructure/cache"
	"github.com/kitchenpos/backend/internal/infrastructure/config"
	"github.com/kitchenpos/backend/internal/infrastructure/event"
	"github.com/kitchenpos/backend/internal/infrastructure/logger"
	"github.com/kitchenpos/backend/internal/infrastructure/migration"
	"github.com/kitchenpos/backend/internal/infrastructure/persistence"
	"github.com/kitchenpos/backend/internal/infrastructure/telemetry"
	"github.com/kitchenpos/backend/internal/interfaces/http/handler"
	"github.com/kitchenpos/backend/internal/interfaces/http/middleware"
	"github.com/kitchenpos/backend/internal/interfaces/http/router"
	"github.com/kitchenpos/backend/migrations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "kitchenpos:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, bootLog)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	// records go to the OTLP log exporter as well once the bridge is up
	log := bootLog
	if providers.Logs.IsEnabled() {
		log, err = logger.New(logCfg, providers.Logs.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting kitchenpos backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh, cfg.Telemetry.DBLogFullSQL)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem(cfg.Database.Driver),
	}, log); err != nil {
		return fmt.Errorf("register database tracing: %w", err)
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		if _, err := telemetry.RegisterDBPoolMetrics(providers.Meter.Meter(), sqlDB); err != nil {
			log.Warn("Database pool metrics unavailable", zap.Error(err))
		}
	}

	if cfg.Database.AutoMigrate {
		if err := migrate(ctx, cfg, db, log); err != nil {
			return err
		}
	}

	idempotencyStore, err := cache.NewIdempotencyStore(ctx, cfg.Redis, !cfg.IsProduction(), log)
	if err != nil {
		return fmt.Errorf("initialize idempotency store: %w", err)
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	menuGroupRepo := persistence.NewGormMenuGroupRepository(db.DB)
	menuRepo := persistence.NewGormMenuRepository(db.DB)
	tableRepo := persistence.NewGormOrderTableRepository(db.DB)
	groupRepo := persistence.NewGormTableGroupRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Event bus and handlers. Each handler sees an event at most once.
	eventBus := event.NewInMemoryEventBus(log)
	handlerIdempotency := shared.IdempotencyConfig{TTL: cfg.Idempotency.TTL, Enabled: cfg.Idempotency.Enabled}
	posMetrics, err := telemetry.NewPOSMetrics(providers.Meter.Meter())
	if err != nil {
		return fmt.Errorf("create business metrics: %w", err)
	}
	for _, h := range []shared.EventHandler{
		activityapp.NewLogHandler(log),
		activityapp.NewMetricsHandler(posMetrics),
	} {
		eventBus.Subscribe(event.NewIdempotentHandler(h, idempotencyStore, handlerIdempotency, log))
	}
	if err := eventBus.Start(ctx); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo, txScope)
	menuGroupService := catalogapp.NewMenuGroupService(menuGroupRepo, txScope)
	menuService := catalogapp.NewMenuService(menuRepo, txScope, eventBus, log)
	tableService := tableapp.NewTableService(tableRepo, txScope, eventBus, log)
	groupService := tableapp.NewTableGroupService(groupRepo, tableRepo, txScope, eventBus, log)
	orderService := orderapp.NewOrderService(orderRepo, txScope, eventBus, log)

	httpMetrics, err := telemetry.NewHTTPMetrics(providers.Meter.Meter())
	if err != nil {
		return fmt.Errorf("create http metrics: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := router.NewEngine(router.Options{
		Logger: log,
		HTTP:   cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     providers.Tracer.IsEnabled(),
		},
		Metrics:          httpMetrics,
		Idempotency:      cfg.Idempotency,
		IdempotencyStore: idempotencyStore,
		Production:       cfg.IsProduction(),
	}, router.Handlers{
		Catalog: handler.NewCatalogHandler(productService, menuGroupService, menuService),
		Table:   handler.NewTableHandler(tableService, groupService),
		Order:   handler.NewOrderHandler(orderService),
		System:  handler.NewSystemHandler(cfg.App.Name, db),
	})
	if err != nil {
		return fmt.Errorf("build http engine: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		return shutdown(srv, cfg.HTTP.ShutdownTimeout, eventBus, idempotencyStore, db, providers, log)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return err
	}
	log.Info("Server exited gracefully")
	return nil
}

// shutdown drains HTTP first so no request publishes into a stopped bus,
// then releases the stores and flushes telemetry
func shutdown(
	srv *http.Server,
	timeout time.Duration,
	bus *event.InMemoryEventBus,
	store shared.IdempotencyStore,
	db *persistence.Database,
	providers *telemetry.Providers,
	log *zap.Logger,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := bus.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("event bus stop: %w", err))
	}
	if err := store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("idempotency store close: %w", err))
	}
	if err := db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}
	if err := providers.Shutdown(ctx); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}
	return errors.Join(errs...)
}

// migrate applies the embedded SQL migrations on postgres. sqlite has no
// golang-migrate driver wired, so the gorm models are migrated instead.
func migrate(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if cfg.Database.Driver != "postgres" {
		log.Info("Auto-migrating gorm models", zap.String("driver", cfg.Database.Driver))
		if err := db.AutoMigrate(ctx); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		return nil
	}

	// the migrator closes its connection, so it gets its own
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	m, err := migration.NewFromFS(sqlDB, migrations.FS, log)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Closing migrator failed", zap.Error(err))
		}
	}()
	if err := m.Up(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func dbSystem(driver string) string {
	if driver == "postgres" {
		return "postgresql"
	}
	return driver
}
