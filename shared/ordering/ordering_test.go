package ordering_test

import (
	"context"
	"errors"
	"testing"

	"folio/shared/constant"
	"folio/shared/failure"
	"folio/shared/ordering"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	items := []ordering.Item{{ID: "a", SortOrder: 0}, {ID: "b", SortOrder: 1}, {ID: "c", SortOrder: 2}}

	t.Run("move down swaps with next", func(t *testing.T) {
		updates, err := ordering.Move(items, "a", constant.MoveDown)
		require.NoError(t, err)
		assert.Equal(t, []ordering.Item{{ID: "a", SortOrder: 1}, {ID: "b", SortOrder: 0}}, updates)
	})

	t.Run("move up swaps with previous", func(t *testing.T) {
		updates, err := ordering.Move(items, "c", constant.MoveUp)
		require.NoError(t, err)
		assert.Equal(t, []ordering.Item{{ID: "c", SortOrder: 1}, {ID: "b", SortOrder: 2}}, updates)
	})

	t.Run("edges are no-ops", func(t *testing.T) {
		updates, err := ordering.Move(items, "a", constant.MoveUp)
		require.NoError(t, err)
		assert.Empty(t, updates)

		updates, err = ordering.Move(items, "c", constant.MoveDown)
		require.NoError(t, err)
		assert.Empty(t, updates)
	})

	t.Run("ties are normalised", func(t *testing.T) {
		tied := []ordering.Item{{ID: "a"}, {ID: "b"}}

		updates, err := ordering.Move(tied, "b", constant.MoveUp)
		require.NoError(t, err)
		assert.Equal(t, []ordering.Item{{ID: "a", SortOrder: 1}}, updates)
	})

	t.Run("ties renumber the whole list", func(t *testing.T) {
		tied := []ordering.Item{{ID: "x", SortOrder: 1}, {ID: "a", SortOrder: 3}, {ID: "b", SortOrder: 3}}

		updates, err := ordering.Move(tied, "b", constant.MoveUp)
		require.NoError(t, err)
		assert.Equal(t, []ordering.Item{
			{ID: "x", SortOrder: 0},
			{ID: "b", SortOrder: 1},
			{ID: "a", SortOrder: 2},
		}, updates)
	})

	t.Run("a tie elsewhere still renumbers", func(t *testing.T) {
		tied := []ordering.Item{{ID: "a", SortOrder: 0}, {ID: "b", SortOrder: 0}, {ID: "c", SortOrder: 5}}

		updates, err := ordering.Move(tied, "c", constant.MoveUp)
		require.NoError(t, err)
		assert.Equal(t, []ordering.Item{{ID: "c", SortOrder: 1}, {ID: "b", SortOrder: 2}}, updates)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := ordering.Move(items, "z", constant.MoveUp)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("bad direction", func(t *testing.T) {
		_, err := ordering.Move(items, "a", "sideways")
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestNext(t *testing.T) {
	assert.Equal(t, 0, ordering.Next(nil))
	assert.Equal(t, 6, ordering.Next([]ordering.Item{{SortOrder: 5}, {SortOrder: 2}}))
}

func TestReorder(t *testing.T) {
	ctx := context.Background()
	items := []ordering.Item{{ID: "a", SortOrder: 0}, {ID: "b", SortOrder: 1}}

	written := map[string]int{}
	write := func(_ context.Context, item ordering.Item) error {
		written[item.ID] = item.SortOrder

		return nil
	}

	require.NoError(t, ordering.Reorder(ctx, items, "b", constant.MoveUp, write))
	assert.Equal(t, map[string]int{"a": 1, "b": 0}, written)

	err := ordering.Reorder(ctx, items, "a", constant.MoveDown, func(context.Context, ordering.Item) error {
		return errors.New("boom")
	})
	assert.ErrorContains(t, err, "boom")
}
