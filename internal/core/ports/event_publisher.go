package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// EventPublisher delivers a domain event to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// EventSink accepts events for asynchronous publication. Enqueue must not
// block the caller.
type EventSink interface {
	Enqueue(event domain.Event)
}
