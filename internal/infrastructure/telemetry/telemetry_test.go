package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kitchenpos/backend/internal/application/activity"
	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
	"github.com/kitchenpos/backend/internal/infrastructure/config"
)

var _ activity.MetricsRecorder = (*POSMetrics)(nil)

func newTestMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return reader, mp
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	s, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range s.DataPoints {
		total += dp.Value
	}
	return total
}

func TestSetupDisabled(t *testing.T) {
	p, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.Tracer.IsEnabled())
	assert.False(t, p.Logs.IsEnabled())
	assert.NotNil(t, p.Meter.Meter())
	assert.NotNil(t, p.Tracer.Tracer("test"))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewSampler(t *testing.T) {
	assert.Contains(t, newSampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, newSampler(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, newSampler(0.5).Description(), "TraceIDRatioBased")
}

func TestZapCoreDisabledIsNop(t *testing.T) {
	lp := &LoggerProvider{logger: zap.NewNop()}
	core := lp.ZapCore("kitchenpos", zapcore.InfoLevel)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))

	var nilProvider *LoggerProvider
	assert.False(t, nilProvider.ZapCore("kitchenpos", zapcore.InfoLevel).Enabled(zapcore.ErrorLevel))
}

func TestPOSMetrics(t *testing.T) {
	reader, mp := newTestMeter(t)
	m, err := NewPOSMetrics(mp.Meter(MeterName))
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordOrderPlaced(ctx, valueobject.MustNewPrice("12.50"), 3)
	m.RecordOrderPlaced(ctx, valueobject.MustNewPrice("0.99"), 1)
	m.RecordOrderStatusChanged(ctx, "COOKING", "MEAL")
	m.RecordTableGroupFormed(ctx, 2)
	m.RecordTableGroupDissolved(ctx, 2)
	m.RecordMenuCreated(ctx)

	got := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, got["pos_order_placed_total"]))
	assert.Equal(t, int64(1349), sumOf(t, got["pos_order_amount_total"]))
	assert.Equal(t, int64(4), sumOf(t, got["pos_order_line_items_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["pos_table_group_formed_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["pos_table_group_dissolved_total"]))
	assert.Equal(t, int64(2), sumOf(t, got["pos_table_released_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["pos_menu_created_total"]))

	status := got["pos_order_status_changed_total"].(metricdata.Sum[int64])
	require.Len(t, status.DataPoints, 1)
	v, ok := status.DataPoints[0].Attributes.Value(AttrOrderStatus)
	require.True(t, ok)
	assert.Equal(t, "MEAL", v.AsString())
}

func TestPOSMetricsNilMeter(t *testing.T) {
	_, err := NewPOSMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestPOSMetricsNoopMeter(t *testing.T) {
	m, err := NewPOSMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	assert.NotPanics(t, func() { m.RecordMenuCreated(context.Background()) })
}

func TestHTTPMetrics(t *testing.T) {
	reader, mp := newTestMeter(t)
	m, err := NewHTTPMetrics(mp.Meter(MeterName))
	require.NoError(t, err)

	m.Record(context.Background(), "POST", "/api/v1/orders", 201, 20*time.Millisecond)
	m.Record(context.Background(), "GET", "", 404, time.Millisecond)

	got := collect(t, reader)
	requests := got["http_server_requests_total"].(metricdata.Sum[int64])
	require.Len(t, requests.DataPoints, 2)

	routes := map[string]bool{}
	for _, dp := range requests.DataPoints {
		v, _ := dp.Attributes.Value(AttrHTTPRoute)
		routes[v.AsString()] = true
	}
	assert.True(t, routes["/api/v1/orders"])
	assert.True(t, routes["unmatched"])

	hist := got["http_server_request_duration_seconds"].(metricdata.Histogram[float64])
	assert.Len(t, hist.DataPoints, 2)
}

func TestRegisterDBPoolMetrics(t *testing.T) {
	reader, mp := newTestMeter(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	sqlDB.SetMaxOpenConns(7)

	reg, err := RegisterDBPoolMetrics(mp.Meter(MeterName), sqlDB)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Unregister() })

	got := collect(t, reader)
	gauge := got["db_pool_connections_max"].(metricdata.Gauge[int64])
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(7), gauge.DataPoints[0].Value)

	conns := got["db_pool_connections"].(metricdata.Gauge[int64])
	states := map[string]bool{}
	for _, dp := range conns.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("db.pool.state"))
		states[v.AsString()] = true
	}
	assert.True(t, states["in_use"])
	assert.True(t, states["idle"])
}

func TestMetricsError(t *testing.T) {
	assert.Equal(t, "metrics: init: meter cannot be nil", ErrMeterNil.Error())
}
