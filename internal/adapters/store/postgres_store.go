package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/zatekoja/clinicrecords/internal/infrastructure/clients/postgres"
)

// PostgresStore is a KVStore over a single key/value table, one row per key.
type PostgresStore struct {
	client *postgres.Client
	db     *goqu.Database
	table  string
}

// NewPostgresStore creates a store over table
func NewPostgresStore(client *postgres.Client, table string) *PostgresStore {
	return &PostgresStore{
		client: client,
		db:     goqu.New("postgres", client.DB()),
		table:  table,
	}
}

// EnsureSchema creates the backing table when it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`, pq.QuoteIdentifier(s.table))
	if _, err := s.client.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create %s table: %w", s.table, err)
	}
	return nil
}

// Get retrieves the value under key
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := s.db.From(s.table).
		Prepared(true).
		Select("value").
		Where(goqu.Ex{"key": key}).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build select for %s: %w", key, err)
	}

	var value string
	err = s.client.DB().QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set upserts the value under key
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := s.db.Insert(s.table).
		Prepared(true).
		Rows(goqu.Record{
			"key":        key,
			"value":      string(value),
			"updated_at": time.Now().UTC(),
		}).
		OnConflict(goqu.DoUpdate("key", goqu.Record{
			"value":      goqu.I("excluded.value"),
			"updated_at": goqu.I("excluded.updated_at"),
		})).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build upsert for %s: %w", key, err)
	}

	if _, err := s.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
