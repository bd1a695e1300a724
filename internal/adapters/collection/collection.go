// Package collection implements the entity repositories as in-memory
// collections persisted in full to a KVStore after every mutation.
package collection

import (
	"context"
	"sync"

	"github.com/zatekoja/clinicrecords/internal/adapters/store"
	"github.com/zatekoja/clinicrecords/internal/domain/providers"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/clinicrecords/pkg/errors"
)

// Store keys of the persisted collections
const (
	PatientsKey     = "patients"
	DoctorsKey      = "doctors"
	AppointmentsKey = "appointments"
)

// SequenceKey returns the key holding the last id assigned in a collection
func SequenceKey(collection string) string {
	return collection + ":sequence"
}

// Keys lists every store key owned by the repositories
func Keys() []string {
	return []string{
		PatientsKey,
		SequenceKey(PatientsKey),
		DoctorsKey,
		SequenceKey(DoctorsKey),
		AppointmentsKey,
	}
}

// Reset empties every collection and restarts the id counters. Adapters
// loaded before a reset keep their old state.
func Reset(ctx context.Context, kv providers.KVStore) error {
	for _, key := range []string{PatientsKey, DoctorsKey, AppointmentsKey} {
		if err := store.SaveCollection[struct{}](ctx, kv, key, nil); err != nil {
			return err
		}
	}
	for _, key := range []string{SequenceKey(PatientsKey), SequenceKey(DoctorsKey)} {
		if err := store.SaveSequence(ctx, kv, key, 0); err != nil {
			return err
		}
	}
	return nil
}

// Notifier is told about every persisted mutation
type Notifier interface {
	Notify(ctx context.Context, collection, operation string)
}

// Option configures an adapter
type Option func(*options)

type options struct {
	notifier Notifier
}

// WithNotifier reports persisted mutations to n
func WithNotifier(n Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// collection owns one entity slice. Writers are serialised and persist while
// holding the lock, so memory and store never diverge between calls.
type collection[T any] struct {
	mu       sync.RWMutex
	kv       providers.KVStore
	key      string
	seqKey   string
	idOf     func(T) int
	items    []T
	lastID   int
	metrics  *observability.Metrics
	notifier Notifier
}

// loadCollection reads key from kv. idOf is nil for collections without ids.
func loadCollection[T any](ctx context.Context, kv providers.KVStore, key string, idOf func(T) int, metrics *observability.Metrics, opts []Option) *collection[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &collection[T]{
		kv:       kv,
		key:      key,
		idOf:     idOf,
		items:    store.LoadCollection[T](ctx, kv, key),
		metrics:  metrics,
		notifier: o.notifier,
	}

	if idOf != nil {
		c.seqKey = SequenceKey(key)
		c.lastID = c.highestID(store.LoadSequence(ctx, kv, c.seqKey), c.items)
	}

	observability.LoggerFromContext(ctx).Debug().
		Str("collection", key).
		Int("count", len(c.items)).
		Int("last_id", c.lastID).
		Msg("collection.loaded")
	return c
}

// reload replaces the items with the stored collection. A failed read keeps
// the current items, and the id counter never moves backwards. The read runs
// under the write lock so a local mutation cannot land between read and swap.
func (c *collection[T]) reload(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := store.ReadCollection[T](ctx, c.kv, c.key)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("collection", c.key).Msg("collection.reload.failed")
		return
	}

	c.items = items
	if c.idOf != nil {
		c.lastID = c.highestID(max(c.lastID, store.LoadSequence(ctx, c.kv, c.seqKey)), items)
	}
}

func (c *collection[T]) highestID(floor int, items []T) int {
	for _, item := range items {
		if id := c.idOf(item); id > floor {
			floor = id
		}
	}
	return floor
}

// snapshot returns a copy of the items in insertion order
func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append(make([]T, 0, len(c.items)), c.items...)
}

// find returns the first item matching pred
func (c *collection[T]) find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// insert appends the item built for the next id. The counter is persisted
// before the collection, so a failure can leave a gap but never a reused id.
func (c *collection[T]) insert(ctx context.Context, build func(id int) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	id := c.lastID + 1
	item := build(id)

	if err := store.SaveSequence(ctx, c.kv, c.seqKey, id); err != nil {
		return zero, apperrors.NewInternalError("failed to persist "+c.key+" sequence", err)
	}
	c.lastID = id

	next := append(make([]T, 0, len(c.items)+1), c.items...)
	next = append(next, item)
	if err := c.persistLocked(ctx, next, "add"); err != nil {
		return zero, err
	}
	return item, nil
}

// apply runs fn on a copy of the items. When fn reports a change the result
// is persisted and replaces the items; when fn fails nothing changes.
func (c *collection[T]) apply(ctx context.Context, op string, fn func(items []T) ([]T, bool, error)) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, changed, err := fn(append(make([]T, 0, len(c.items)), c.items...))
	if err != nil || !changed {
		return false, err
	}
	if err := c.persistLocked(ctx, next, op); err != nil {
		return false, err
	}
	return true, nil
}

func (c *collection[T]) persistLocked(ctx context.Context, next []T, op string) error {
	if err := store.SaveCollection(ctx, c.kv, c.key, next); err != nil {
		return apperrors.NewInternalError("failed to persist "+c.key, err)
	}
	c.items = next
	observability.RecordMutation(ctx, c.metrics, c.key, op)
	if c.notifier != nil {
		c.notifier.Notify(ctx, c.key, op)
	}
	return nil
}

// removeWhere returns items without those matching pred, and whether any matched
func removeWhere[T any](items []T, pred func(T) bool) ([]T, bool) {
	kept := items[:0]
	removed := false
	for _, item := range items {
		if pred(item) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	return kept, removed
}
