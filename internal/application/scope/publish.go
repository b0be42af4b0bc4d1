package scope

import (
	"context"

	"github.com/kitchenpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PublishEvents hands the pending events of the given aggregates to the
// publisher and clears them. It must only be called after the transaction
// that produced the events has committed. A publish failure is logged and
// does not fail the operation: the state change is already durable.
func PublishEvents(ctx context.Context, publisher shared.EventPublisher, log *zap.Logger, aggregates ...shared.AggregateRoot) {
	var events []shared.DomainEvent
	for _, agg := range aggregates {
		events = append(events, agg.GetDomainEvents()...)
		agg.ClearDomainEvents()
	}
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		log.Warn("failed to publish domain events",
			zap.Int("event_count", len(events)),
			zap.Error(err),
		)
	}
}
