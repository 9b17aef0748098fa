package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/observability"
)

// StartAuditWorker subscribes an audit handler to every event type the
// stores publish. Each event is logged and counted.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := func(_ context.Context, event events.Event) error {
		logger.Info("domain event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Int64("entity_id", event.EntityID),
			zap.String("actor", event.Actor),
			zap.Any("payload", event.Payload))
		metrics.RecordEvent(string(event.Type))
		return nil
	}

	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, handler)
	}
}
