package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bound variables in db.statement
	SlowQueryThresh time.Duration // spans above it get db.slow_query=true
	DBSystem        string        // "postgresql" or "sqlite"
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin plus callbacks that tag
// slow queries and record errors other than record-not-found on the span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := registerBefore(db, markQueryStart); err != nil {
		return err
	}
	if err := registerAfter(db, slowQueryCallback(cfg.SlowQueryThresh)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
		zap.String("db_system", cfg.DBSystem),
	)
	return nil
}

func registerBefore(db *gorm.DB, fn func(*gorm.DB)) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("pos_timing:before_create", fn),
		cb.Query().Before("gorm:query").Register("pos_timing:before_query", fn),
		cb.Update().Before("gorm:update").Register("pos_timing:before_update", fn),
		cb.Delete().Before("gorm:delete").Register("pos_timing:before_delete", fn),
		cb.Row().Before("gorm:row").Register("pos_timing:before_row", fn),
		cb.Raw().Before("gorm:raw").Register("pos_timing:before_raw", fn),
	)
}

// registerAfter runs fn ahead of otelgorm's after hook so the span is
// still recording.
func registerAfter(db *gorm.DB, fn func(*gorm.DB)) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().After("gorm:create").Before("otel:after_create").Register("pos_timing:after_create", fn),
		cb.Query().After("gorm:query").Before("otel:after_query").Register("pos_timing:after_query", fn),
		cb.Update().After("gorm:update").Before("otel:after_update").Register("pos_timing:after_update", fn),
		cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("pos_timing:after_delete", fn),
		cb.Row().After("gorm:row").Before("otel:after_row").Register("pos_timing:after_row", fn),
		cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("pos_timing:after_raw", fn),
	)
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func slowQueryCallback(threshold time.Duration) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}

		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}

		start, ok := ctx.Value(queryStartKey{}).(time.Time)
		if !ok || threshold <= 0 {
			return
		}
		if elapsed := time.Since(start); elapsed > threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("threshold_ms", threshold.Milliseconds()),
			))
		}
	}
}
