package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/adanyl0v/go-portfolio/internal/config"
)

func mustConnectRedis() *redis.Client {
	cfg := config.Global().Redis
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("addr", cfg.Addr).
			Msg("failed to ping redis")
		panic(err)
	}
	globalLogger.Info().
		Str("addr", cfg.Addr).
		Msg("connected to redis")
	return client
}
