package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	redisclient "github.com/zatekoja/clinicrecords/internal/infrastructure/clients/redis"
)

// RedisStore is a KVStore over Redis strings. Keys never expire.
type RedisStore struct {
	client *redisclient.Client
	prefix string
}

// NewRedisStore creates a store writing keys as prefix+key
func NewRedisStore(client *redisclient.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves the value under key
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	result, err := s.client.Client().Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return result, true, nil
}

// Set replaces the value under key
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Client().Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}
