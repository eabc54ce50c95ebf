package app

import (
	"context"
	"fmt"

	"github.com/adanyl0v/go-portfolio/internal/config"
	"github.com/adanyl0v/go-portfolio/internal/storage"
)

var globalStorage storage.Storage

func MustOpenStorage() {
	cfg := config.Global()

	var err error
	switch cfg.Storage.Driver {
	case storage.DriverMemory:
		globalStorage = storage.NewMemoryStorage()
	case storage.DriverFile:
		globalStorage, err = storage.NewFileStorage(cfg.Storage.DataDir)
	case storage.DriverSQLite:
		globalStorage, err = storage.NewSQLiteStorage(cfg.Storage.SQLitePath)
	case storage.DriverRedis:
		globalStorage = storage.NewRedisStorage(mustConnectRedis(), cfg.Redis.KeyPrefix)
	case storage.DriverPostgres:
		MustConnectPostgres()
		pgStorage := storage.NewPostgresStorage(globalPostgresPool)
		err = pgStorage.Migrate(context.Background())
		globalStorage = pgStorage
	default:
		err = fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", cfg.Storage.Driver).
			Msg("failed to open storage")
		panic(err)
	}

	globalLogger.Info().
		Str("driver", cfg.Storage.Driver).
		Msg("opened storage")
}

func CloseStorage() {
	if globalStorage == nil {
		return
	}

	err := globalStorage.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close storage")
	}
	DisconnectPostgres()
	globalLogger.Info().Msg("closed storage")
}
