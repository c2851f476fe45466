package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/stockpos/backend/internal/domain/shared"
)

// LogPublisher writes domain events to the structured log. It is the
// in-process stand-in for a real broker: downstream consumers can tail the
// event log, and swapping in a durable transport only means replacing this
// implementation behind shared.EventPublisher.
type LogPublisher struct {
	log *zap.Logger
}

// NewLogPublisher creates a publisher that logs every event
func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish logs each event with its identity and origin fields
func (p *LogPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		p.log.Info("Domain event",
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_type", event.AggregateType()),
			zap.Int64("aggregate_id", event.AggregateID()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}
	return nil
}
