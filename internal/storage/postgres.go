package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStorage struct {
	pgPool *pgxpool.Pool
}

// NewPostgresStorage wraps an already connected pool. The pool is
// owned by the caller and is not closed by Close.
func NewPostgresStorage(pgPool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pgPool: pgPool}
}

func (s *PostgresStorage) Migrate(ctx context.Context) error {
	const createTableQuery = `
CREATE TABLE IF NOT EXISTS kv_store (
    key        TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)
`
	_, err := s.pgPool.Exec(ctx, createTableQuery)
	return err
}

func (s *PostgresStorage) Get(ctx context.Context, key string) ([]byte, error) {
	const selectValueQuery = `
SELECT value
FROM kv_store
WHERE key = $1
`
	var value []byte
	err := s.pgPool.QueryRow(
		ctx,
		selectValueQuery,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *PostgresStorage) Set(ctx context.Context, key string, value []byte) error {
	const upsertValueQuery = `
INSERT INTO kv_store (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at
`
	_, err := s.pgPool.Exec(
		ctx,
		upsertValueQuery,
		key,
		value,
	)
	return err
}

func (s *PostgresStorage) Close() error {
	return nil
}
