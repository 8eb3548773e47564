// Package redis builds the shared Redis client.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"etf_advisor/internal/platform/config"
)

// ErrDisabled is returned when no Redis host is configured.
var ErrDisabled = errors.New("redis: not configured")

const pingTimeout = 3 * time.Second

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		log.Error().Err(err).Str("address", cfg.Addr()).Msg("redis connection failed")
		return nil, err
	}

	log.Info().Str("address", cfg.Addr()).Msg("redis connection successful")
	return rdb, nil
}
