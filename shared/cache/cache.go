// Package cache is the read-through cache in front of public list and detail reads. Values are
// stored as JSON; a miss is reported as an error wrapping Nil.
package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"folio/infras/otel"

	"github.com/redis/go-redis/v9"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
)

// Nil is wrapped by Get on a miss, for both backends.
var Nil = redis.Nil

type Cache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	// Clear removes every key matching a glob pattern such as "gallery:*".
	Clear(ctx context.Context, pattern string) error
}

// New returns a redis backed cache, or an in-process one when client is nil.
func New(client *redis.Client, ot otel.Otel) Cache {
	if client == nil {
		return NewMemoryCache(ot)
	}

	return NewRedisCache(client, ot)
}

func encode(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encoding %T for cache: %w", value, err)
	}

	return string(raw), nil
}

func decode(raw string, value any) error {
	if s, ok := value.(*string); ok {
		*s = raw

		return nil
	}

	if err := json.Unmarshal([]byte(raw), value); err != nil {
		return fmt.Errorf("decoding cached %T: %w", value, err)
	}

	return nil
}
