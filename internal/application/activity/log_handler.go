package activity

import (
	"context"

	"github.com/kitchenpos/backend/internal/domain/order"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/table"
	"go.uber.org/zap"
)

// LogHandler writes one structured line per committed domain event
type LogHandler struct {
	logger *zap.Logger
}

// NewLogHandler creates a new LogHandler
func NewLogHandler(logger *zap.Logger) *LogHandler {
	return &LogHandler{logger: logger.Named("activity")}
}

// EventTypes returns an empty slice: the handler receives all events
func (h *LogHandler) EventTypes() []string {
	return nil
}

// Handle logs the event
func (h *LogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	}

	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		fields = append(fields,
			zap.String("order_table_id", e.OrderTableID.String()),
			zap.Int("line_count", e.LineCount),
			zap.Stringer("amount", e.Amount),
		)
	case *order.OrderStatusChangedEvent:
		fields = append(fields,
			zap.String("from", e.From.String()),
			zap.String("to", e.To.String()),
		)
	case *table.TableGroupFormedEvent:
		fields = append(fields, zap.Int("table_count", len(e.TableIDs)))
	case *table.TableGroupDissolvedEvent:
		fields = append(fields, zap.Int("released_count", len(e.Released)))
	case *table.TableOccupancyChangedEvent:
		fields = append(fields, zap.Bool("empty", e.Empty))
	}

	h.logger.Info("pos activity", fields...)
	return nil
}

var _ shared.EventHandler = (*LogHandler)(nil)
