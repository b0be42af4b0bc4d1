package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type tracedRow struct {
	ID   int64
	Name string
}

func setupTracedDB(t *testing.T, cfg DBTracingConfig) (*gorm.DB, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	require.NoError(t, RegisterDBTracing(db, cfg, zap.NewNop()))
	return db, recorder
}

func TestRegisterDBTracing(t *testing.T) {
	t.Run("disabled registers nothing", func(t *testing.T) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: false}, zap.NewNop()))
		assert.Nil(t, db.Callback().Query().Get("pos_timing:after_query"))
	})

	t.Run("queries produce spans tagged with the table", func(t *testing.T) {
		db, recorder := setupTracedDB(t, DBTracingConfig{Enabled: true, DBSystem: "sqlite", SlowQueryThresh: time.Hour})

		ctx, parent := otel.Tracer("test").Start(context.Background(), "parent")
		require.NoError(t, db.WithContext(ctx).Create(&tracedRow{ID: 1, Name: "a"}).Error)
		var rows []tracedRow
		require.NoError(t, db.WithContext(ctx).Find(&rows).Error)
		parent.End()

		var dbSpans int
		for _, s := range recorder.Ended() {
			if s.Name() == "parent" {
				continue
			}
			dbSpans++
			assert.Equal(t, parent.SpanContext().TraceID(), s.SpanContext().TraceID())
			for _, kv := range s.Attributes() {
				assert.NotEqual(t, attribute.Key("db.slow_query"), kv.Key)
			}
		}
		assert.GreaterOrEqual(t, dbSpans, 2)
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		db, recorder := setupTracedDB(t, DBTracingConfig{Enabled: true, DBSystem: "sqlite"})

		var row tracedRow
		err := db.WithContext(context.Background()).First(&row, 42).Error
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)

		for _, s := range recorder.Ended() {
			assert.Empty(t, s.Events(), "no exception event expected on %s", s.Name())
		}
	})
}
