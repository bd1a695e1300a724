package providers

import (
	"context"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.CollectionEvent) error

	// Subscribe subscribes to events on a channel until ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.CollectionEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelCollections carries a CollectionEvent for every persisted mutation
const EventChannelCollections = "collections:changes"
