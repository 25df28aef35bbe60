package kvstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	goRedis "github.com/redis/go-redis/v9"
)

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

type redisStore struct {
	client *goRedis.Client
}

// NewRedis stores keys in redis. The client is shared with the cache and is not closed by Close.
func NewRedis(client *goRedis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goRedis.Nil) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("kvstore: get %s: %w", key, err)
	}

	return value, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("kvstore: set %s: %w", key, err)
	}

	return nil
}

func (r *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("kvstore: delete: %w", err)
	}

	return nil
}

func (r *redisStore) Take(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.GetDel(ctx, key).Bytes()
	if errors.Is(err, goRedis.Nil) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("kvstore: take %s: %w", key, err)
	}

	return value, nil
}

func (r *redisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}

	iter := r.client.Scan(ctx, 0, globEscaper.Replace(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("kvstore: keys %s: %w", prefix, err)
	}

	slices.Sort(keys)

	return slices.Compact(keys), nil
}

func (r *redisStore) Close() error {
	return nil
}
