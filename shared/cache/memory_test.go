package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"folio/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedCounter struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

func TestMemoryCache_SaveGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCache(mocks.NewOtel())

	require.NoError(t, store.Save(ctx, "counters:1", cachedCounter{Label: "Weddings", Value: 120}, 60))

	var got cachedCounter
	require.NoError(t, store.Get(ctx, "counters:1", &got))
	assert.Equal(t, cachedCounter{Label: "Weddings", Value: 120}, got)

	require.NoError(t, store.Save(ctx, "token", "plain", 0))

	var str string
	require.NoError(t, store.Get(ctx, "token", &str))
	assert.Equal(t, "plain", str)
}

func TestMemoryCache_Miss(t *testing.T) {
	store := NewMemoryCache(mocks.NewOtel())

	var got cachedCounter
	err := store.Get(context.Background(), "missing", &got)
	assert.True(t, errors.Is(err, Nil))
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	store := &memoryCache{entries: map[string]memoryEntry{}, otel: mocks.NewOtel(), now: func() time.Time { return now }}

	require.NoError(t, store.Save(ctx, "k", "v", 10))

	now = now.Add(11 * time.Second)

	var got string
	assert.ErrorIs(t, store.Get(ctx, "k", &got), Nil)
}

func TestMemoryCache_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCache(mocks.NewOtel())

	require.NoError(t, store.Save(ctx, "events:list:1", "a", 0))
	require.NoError(t, store.Save(ctx, "events:list:2", "b", 0))
	require.NoError(t, store.Save(ctx, "reviews:list:1", "c", 0))

	require.NoError(t, store.Clear(ctx, "events:*"))

	var got string
	assert.ErrorIs(t, store.Get(ctx, "events:list:1", &got), Nil)
	assert.ErrorIs(t, store.Get(ctx, "events:list:2", &got), Nil)
	require.NoError(t, store.Get(ctx, "reviews:list:1", &got))
	assert.Equal(t, "c", got)

	require.NoError(t, store.Delete(ctx, "reviews:list:1"))
	assert.ErrorIs(t, store.Get(ctx, "reviews:list:1", &got), Nil)
}
