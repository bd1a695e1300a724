package entities

import (
	"time"

	"github.com/google/uuid"
)

// CollectionEvent announces a persisted mutation of a collection so other
// processes sharing the store can reload it.
type CollectionEvent struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	Operation  string    `json:"operation"`
	Origin     string    `json:"origin"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewCollectionEvent creates a new collection event
func NewCollectionEvent(origin, collection, operation string) *CollectionEvent {
	return &CollectionEvent{
		ID:         uuid.NewString(),
		Collection: collection,
		Operation:  operation,
		Origin:     origin,
		Timestamp:  time.Now().UTC(),
	}
}
