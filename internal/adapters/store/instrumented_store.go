package store

import (
	"context"
	"time"

	"github.com/zatekoja/clinicrecords/internal/domain/providers"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

// InstrumentedStore wraps a KVStore with spans and operation metrics
type InstrumentedStore struct {
	next    providers.KVStore
	backend string
	metrics *observability.Metrics
}

// NewInstrumentedStore wraps next. metrics may be nil.
func NewInstrumentedStore(next providers.KVStore, backend string, metrics *observability.Metrics) *InstrumentedStore {
	return &InstrumentedStore{
		next:    next,
		backend: backend,
		metrics: metrics,
	}
}

// Get delegates to the wrapped store
func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := observability.StartSpan(ctx, "store.get",
		attribute.String("store.backend", s.backend),
		attribute.String("store.key", key),
	)
	defer span.End()

	start := time.Now()
	value, found, err := s.next.Get(ctx, key)
	observability.RecordStoreMetric(ctx, s.metrics, s.backend, "get", time.Since(start), err)
	observability.RecordError(span, err)
	observability.SetSpanAttributes(span, attribute.Bool("store.found", found), attribute.Int("store.bytes", len(value)))
	return value, found, err
}

// Set delegates to the wrapped store
func (s *InstrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := observability.StartSpan(ctx, "store.set",
		attribute.String("store.backend", s.backend),
		attribute.String("store.key", key),
		attribute.Int("store.bytes", len(value)),
	)
	defer span.End()

	start := time.Now()
	err := s.next.Set(ctx, key, value)
	observability.RecordStoreMetric(ctx, s.metrics, s.backend, "set", time.Since(start), err)
	observability.RecordError(span, err)
	return err
}
