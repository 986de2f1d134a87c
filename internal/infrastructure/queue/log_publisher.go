package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
)

// LogPublisher records events in the log. Used when no broker is configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.Event) error {
	p.log.Debug().
		Str("event_type", string(event.Type)).
		Str("aggregate_id", event.AggregateID).
		Time("occurred_at", event.OccurredAt).
		Msg("domain event")
	return nil
}
