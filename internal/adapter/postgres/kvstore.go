package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const kvTable = "kv_store"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// KVStore persists opaque blobs by key in the kv_store table.
type KVStore struct {
	q    Querier
	ping pinger
}

// NewKVStore creates a KVStore backed by the given pool.
func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{q: pool, ping: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the stored value for key. A missing key reports ok=false without error.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := psql.
		Select("value").
		From(kvTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, false, err
	}

	var value []byte
	err = s.q.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, mapError(err, "get", key)
	}
	return value, true, nil
}

// Ping verifies connectivity for readiness probes.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.ping.Ping(ctx)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Set upserts the value for key.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	query, args, err := psql.
		Insert(kvTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "set", key)
	}
	return nil
}
