// Package redis opens the shared go-redis client used by the cache and the redis kv driver.
package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"folio/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// New returns a nil client when redis is not configured; the cache and kv store then stay
// in process. The cleanup closes the client.
func New(cfg *config.Config) (*goRedis.Client, func(), error) {
	if !cfg.UsesRedis() {
		log.Info().Msg("Redis not configured, cache and kv stay in process")

		return nil, func() {}, nil
	}

	primary := cfg.Cache.Redis.Primary
	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, nil, fmt.Errorf("pinging redis at %s: %w", client.Options().Addr, err)
	}

	log.Info().Str("addr", client.Options().Addr).Int("db", primary.DB).Msg("Connected to Redis")

	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}

	return client, cleanup, nil
}
