// Package activity holds the event handlers that react to committed POS
// state changes: business metrics and the activity log.
package activity

import (
	"context"
	"fmt"

	"github.com/kitchenpos/backend/internal/domain/catalog"
	"github.com/kitchenpos/backend/internal/domain/order"
	"github.com/kitchenpos/backend/internal/domain/shared"
	"github.com/kitchenpos/backend/internal/domain/shared/valueobject"
	"github.com/kitchenpos/backend/internal/domain/table"
)

// MetricsRecorder receives business measurements. Implemented by the
// telemetry layer.
type MetricsRecorder interface {
	RecordOrderPlaced(ctx context.Context, amount valueobject.Price, lineCount int)
	RecordOrderStatusChanged(ctx context.Context, from, to string)
	RecordTableGroupFormed(ctx context.Context, tableCount int)
	RecordTableGroupDissolved(ctx context.Context, releasedCount int)
	RecordMenuCreated(ctx context.Context)
}

// MetricsHandler turns domain events into business metrics
type MetricsHandler struct {
	recorder MetricsRecorder
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(recorder MetricsRecorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

// EventTypes returns the event types this handler is interested in
func (h *MetricsHandler) EventTypes() []string {
	return []string{
		order.EventTypeOrderPlaced,
		order.EventTypeOrderStatusChanged,
		table.EventTypeTableGroupFormed,
		table.EventTypeTableGroupDissolved,
		catalog.EventTypeMenuCreated,
	}
}

// Handle records the metric that matches the event
func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		h.recorder.RecordOrderPlaced(ctx, e.Amount, e.LineCount)
	case *order.OrderStatusChangedEvent:
		h.recorder.RecordOrderStatusChanged(ctx, e.From.String(), e.To.String())
	case *table.TableGroupFormedEvent:
		h.recorder.RecordTableGroupFormed(ctx, len(e.TableIDs))
	case *table.TableGroupDissolvedEvent:
		h.recorder.RecordTableGroupDissolved(ctx, len(e.Released))
	case *catalog.MenuCreatedEvent:
		h.recorder.RecordMenuCreated(ctx)
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	return nil
}

var _ shared.EventHandler = (*MetricsHandler)(nil)
