package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a two-column jsonb table.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresStore wraps an open pool. table is quoted as an identifier.
func NewPostgresStore(pool *pgxpool.Pool, table string) *PostgresStore {
	return &PostgresStore{
		pool:  pool,
		table: pgx.Identifier{table}.Sanitize(),
	}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	q := fmt.Sprintf(`
create table if not exists %s (
	key        text primary key,
	value      jsonb not null,
	updated_at timestamptz not null default now()
);`, s.table)

	if _, err := s.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	q := fmt.Sprintf(`select value::text from %s where key = $1`, s.table)

	var value string
	err := s.pool.QueryRow(ctx, q, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	q := fmt.Sprintf(`
insert into %s (key, value, updated_at)
values ($1, $2::jsonb, now())
on conflict (key) do update
set value = excluded.value, updated_at = now();`, s.table)

	if _, err := s.pool.Exec(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	q := fmt.Sprintf(`delete from %s where key = $1`, s.table)

	if _, err := s.pool.Exec(ctx, q, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	q := fmt.Sprintf(`select key, value::text from %s where key = any($1)`, s.table)
	rows, err := s.pool.Query(ctx, q, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to mget %d keys: %w", len(keys), err)
	}
	defer rows.Close()

	found := make(map[string][]byte, len(keys))
	for rows.Next() {
		var (
			key   string
			value string
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan mget row: %w", err)
		}
		found[key] = []byte(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to mget %d keys: %w", len(keys), err)
	}

	for i, k := range keys {
		out[i] = found[k]
	}
	return out, nil
}

func (s *PostgresStore) Scan(ctx context.Context, prefix string) ([]string, error) {
	q := fmt.Sprintf(`select key from %s where starts_with(key, $1)`, s.table)

	rows, err := s.pool.Query(ctx, q, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", prefix, err)
	}
	defer rows.Close()

	keys := make([]string, 0, 16)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key row: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
