package providers

import (
	"context"
)

// KVStore is the persistence port behind the collections: a single namespace
// of keys holding serialized values. Calls are synchronous and each call is
// atomic with respect to other calls on the same key.
type KVStore interface {
	// Get returns the value stored under key. found is false when the key
	// has never been set.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set replaces the value stored under key
	Set(ctx context.Context, key string, value []byte) error
}
