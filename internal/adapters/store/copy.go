package store

import (
	"context"
	"fmt"

	"github.com/zatekoja/clinicrecords/internal/domain/providers"
)

// Copy copies the raw values of keys from src to dst and returns how many
// were copied. Keys missing from src are skipped and left untouched in dst.
func Copy(ctx context.Context, src, dst providers.KVStore, keys []string) (int, error) {
	copied := 0
	for _, key := range keys {
		value, found, err := src.Get(ctx, key)
		if err != nil {
			return copied, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !found {
			continue
		}
		if err := dst.Set(ctx, key, value); err != nil {
			return copied, fmt.Errorf("failed to write %s: %w", key, err)
		}
		copied++
	}
	return copied, nil
}
