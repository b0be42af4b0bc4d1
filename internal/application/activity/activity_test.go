package activity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kitchenpos/backend/internal/domain/order"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
	"github.com/kitchenpos/backend/internal/domain/table"
	"github.com/kitchenpos/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordOrderPlaced(ctx context.Context, amount valueobject.Price, lineCount int) {
	m.Called(ctx, amount.String(), lineCount)
}

func (m *mockRecorder) RecordOrderStatusChanged(ctx context.Context, from, to string) {
	m.Called(ctx, from, to)
}

func (m *mockRecorder) RecordTableGroupFormed(ctx context.Context, tableCount int) {
	m.Called(ctx, tableCount)
}

func (m *mockRecorder) RecordTableGroupDissolved(ctx context.Context, releasedCount int) {
	m.Called(ctx, releasedCount)
}

func (m *mockRecorder) RecordMenuCreated(ctx context.Context) {
	m.Called(ctx)
}

func orderPlaced() *order.OrderPlacedEvent {
	o := &order.Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderTableID:      uuid.New(),
		Status:            order.OrderStatusCooking,
		LineItems:         []order.OrderLineItem{{ID: uuid.New()}},
	}
	return order.NewOrderPlacedEvent(o, valueobject.MustNewPrice("32000"))
}

func TestMetricsHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("order placed", func(t *testing.T) {
		rec := new(mockRecorder)
		rec.On("RecordOrderPlaced", ctx, "32000.00", 1).Return()

		require.NoError(t, NewMetricsHandler(rec).Handle(ctx, orderPlaced()))
		rec.AssertExpectations(t)
	})

	t.Run("status changed", func(t *testing.T) {
		rec := new(mockRecorder)
		rec.On("RecordOrderStatusChanged", ctx, "COOKING", "MEAL").Return()

		o := &order.Order{BaseAggregateRoot: shared.NewBaseAggregateRoot(), Status: order.OrderStatusMeal}
		require.NoError(t, NewMetricsHandler(rec).Handle(ctx, order.NewOrderStatusChangedEvent(o, order.OrderStatusCooking)))
		rec.AssertExpectations(t)
	})

	t.Run("group formed and dissolved", func(t *testing.T) {
		rec := new(mockRecorder)
		rec.On("RecordTableGroupFormed", ctx, 2).Return()
		rec.On("RecordTableGroupDissolved", ctx, 1).Return()

		g := &table.TableGroup{BaseAggregateRoot: shared.NewBaseAggregateRoot(), TableIDs: []uuid.UUID{uuid.New(), uuid.New()}}
		h := NewMetricsHandler(rec)
		require.NoError(t, h.Handle(ctx, table.NewTableGroupFormedEvent(g)))
		require.NoError(t, h.Handle(ctx, table.NewTableGroupDissolvedEvent(g, g.TableIDs[:1])))
		rec.AssertExpectations(t)
	})

	t.Run("unexpected event", func(t *testing.T) {
		err := NewMetricsHandler(new(mockRecorder)).Handle(ctx, testutil.NewTestEvent("Other"))
		assert.Error(t, err)
	})
}

func TestLogHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewLogHandler(zap.New(core))

	assert.Empty(t, h.EventTypes())
	require.NoError(t, h.Handle(context.Background(), orderPlaced()))

	entries := logs.FilterMessage("pos activity").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, order.EventTypeOrderPlaced, fields["event_type"])
	assert.Equal(t, "32000.00", fields["amount"])
	assert.Equal(t, int64(1), fields["line_count"])
}
