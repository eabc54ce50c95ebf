// Package storage provides the key-value slot the task list is
// persisted to. Values are opaque byte slices written and read
// wholesale; there is no partial update.
package storage

import (
	"context"
	"errors"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

var ErrNotFound = errors.New("key not found")

type Storage interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	Close() error
}
