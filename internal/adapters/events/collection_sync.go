package events

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/zatekoja/clinicrecords/internal/domain/entities"
	"github.com/zatekoja/clinicrecords/internal/domain/providers"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
)

// Reloader re-reads a collection from the store
type Reloader interface {
	Reload(ctx context.Context)
}

// CollectionSync keeps the collections of several processes sharing one
// store fresh. It publishes every local mutation and reloads a collection
// when another process reports one. Writes from two processes to the same
// collection are not serialised; the last write wins.
type CollectionSync struct {
	bus    providers.EventBus
	origin string

	mu        sync.RWMutex
	reloaders map[string]Reloader
}

// NewCollectionSync creates a sync over bus with a fresh origin id
func NewCollectionSync(bus providers.EventBus) *CollectionSync {
	return &CollectionSync{
		bus:       bus,
		origin:    uuid.NewString(),
		reloaders: make(map[string]Reloader),
	}
}

// Origin identifies this process in published events
func (s *CollectionSync) Origin() string {
	return s.origin
}

// Register reloads r whenever another process changes collection
func (s *CollectionSync) Register(collection string, r Reloader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloaders[collection] = r
}

// Notify publishes a local mutation. A failed publish is logged; the
// mutation itself already succeeded.
func (s *CollectionSync) Notify(ctx context.Context, collection, operation string) {
	event := entities.NewCollectionEvent(s.origin, collection, operation)
	if err := s.bus.Publish(ctx, providers.EventChannelCollections, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("collection", collection).
			Msg("collection.notify.failed")
	}
}

// Run applies events from other processes until ctx is done
func (s *CollectionSync) Run(ctx context.Context) error {
	events, err := s.bus.Subscribe(ctx, providers.EventChannelCollections)
	if err != nil {
		return err
	}

	logger := observability.GetLogger()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.Origin == s.origin {
				continue
			}

			s.mu.RLock()
			r := s.reloaders[event.Collection]
			s.mu.RUnlock()
			if r == nil {
				continue
			}

			r.Reload(ctx)
			logger.Debug().
				Str("collection", event.Collection).
				Str("operation", event.Operation).
				Str("origin", event.Origin).
				Msg("collection.reloaded")
		}
	}
}
