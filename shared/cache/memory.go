package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"folio/infras/otel"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	otel    otel.Otel
	now     func() time.Time
}

// NewMemoryCache keeps entries in a process-local map. Expired entries are dropped on read.
func NewMemoryCache(ot otel.Otel) Cache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		otel:    ot,
		now:     time.Now,
	}
}

// Clear implements Cache. Only trailing-wildcard patterns are understood; anything else is an exact key.
func (cache *memoryCache) Clear(ctx context.Context, pattern string) error {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, pattern)

	cache.mu.Lock()
	defer cache.mu.Unlock()

	prefix, wildcard := strings.CutSuffix(pattern, "*")

	for key := range cache.entries {
		if (wildcard && strings.HasPrefix(key, prefix)) || key == pattern {
			delete(cache.entries, key)
		}
	}

	return nil
}

// Delete implements Cache.
func (cache *memoryCache) Delete(ctx context.Context, key string) error {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()

	cache.mu.Lock()
	delete(cache.entries, key)
	cache.mu.Unlock()

	return nil
}

// Get implements Cache.
func (cache *memoryCache) Get(ctx context.Context, key string, value any) (err error) {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	cache.mu.RLock()
	entry, ok := cache.entries[key]
	cache.mu.RUnlock()

	if !ok || entry.expired(cache.now()) {
		return fmt.Errorf("failed to get cache value: %w", Nil)
	}

	return decode(entry.value, value)
}

// Save implements Cache.
func (cache *memoryCache) Save(ctx context.Context, key string, value any, duration int) error {
	_, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	strValue, err := encode(value)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	entry := memoryEntry{value: string(strValue)}
	if duration > 0 {
		entry.expiresAt = cache.now().Add(time.Second * time.Duration(duration))
	}

	cache.mu.Lock()
	cache.entries[key] = entry
	cache.mu.Unlock()

	return nil
}
