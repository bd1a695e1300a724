package store

import (
	"context"
	"fmt"
	"io"

	"github.com/zatekoja/clinicrecords/internal/domain/providers"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/clients/postgres"
	redisclient "github.com/zatekoja/clinicrecords/internal/infrastructure/clients/redis"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	"github.com/zatekoja/clinicrecords/pkg/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the KVStore selected by cfg.Store.Driver, wrapped with
// instrumentation. The returned closer releases backend connections.
func Open(ctx context.Context, cfg *config.Config, metrics *observability.Metrics) (providers.KVStore, io.Closer, error) {
	var (
		kv     providers.KVStore
		closer io.Closer = nopCloser{}
	)

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		kv = NewMemoryStore()
	case config.StoreDriverFile:
		fileStore, err := NewFileStore(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		kv = fileStore
	case config.StoreDriverRedis:
		client, err := redisclient.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		kv = NewRedisStore(client, cfg.Store.KeyPrefix)
		closer = client
	case config.StoreDriverPostgres:
		client, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		pgStore := NewPostgresStore(client, cfg.Database.Table)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			client.Close()
			return nil, nil, err
		}
		kv = pgStore
		closer = client
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	observability.GetLogger().Info().Str("driver", cfg.Store.Driver).Msg("store.opened")
	return NewInstrumentedStore(kv, cfg.Store.Driver, metrics), closer, nil
}
