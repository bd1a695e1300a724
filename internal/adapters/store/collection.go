package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zatekoja/clinicrecords/internal/domain/providers"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
)

// SaveCollection serializes items as a JSON array and replaces the value under key
func SaveCollection[T any](ctx context.Context, kv providers.KVStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// ReadCollection returns the collection stored under key. A missing key is
// an empty collection; an unreadable value or a failing store is an error.
func ReadCollection[T any](ctx context.Context, kv providers.KVStore, key string) ([]T, error) {
	data, found, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !found {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &CorruptError{Key: key, Size: len(data), Err: err}
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

// CorruptError reports a stored value that does not decode
type CorruptError struct {
	Key  string
	Size int
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt value under %s (%d bytes): %v", e.Key, e.Size, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// LoadCollection returns the collection stored under key. A missing key, an
// unreadable value, or a failing store all yield an empty collection; the
// last two are logged.
func LoadCollection[T any](ctx context.Context, kv providers.KVStore, key string) []T {
	items, err := ReadCollection[T](ctx, kv, key)
	if err != nil {
		logger := observability.LoggerFromContext(ctx)
		var corrupt *CorruptError
		if errors.As(err, &corrupt) {
			logger.Warn().Err(corrupt.Err).Str("key", key).Int("bytes", corrupt.Size).Msg("store.load.corrupt")
		} else {
			logger.Error().Err(err).Str("key", key).Msg("store.load.failed")
		}
		return []T{}
	}
	return items
}

// SaveSequence stores the last assigned id of a collection
func SaveSequence(ctx context.Context, kv providers.KVStore, key string, value int) error {
	if err := kv.Set(ctx, key, []byte(strconv.Itoa(value))); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// LoadSequence returns the stored counter, or 0 when missing or unreadable.
func LoadSequence(ctx context.Context, kv providers.KVStore, key string) int {
	data, found, err := kv.Get(ctx, key)
	if err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Str("key", key).Msg("store.load.failed")
		return 0
	}
	if !found {
		return 0
	}
	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || value < 0 {
		observability.LoggerFromContext(ctx).Warn().Str("key", key).Msg("store.load.corrupt")
		return 0
	}
	return value
}
