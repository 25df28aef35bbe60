package shared_test

import (
	"context"
	"errors"
	"testing"

	"folio/shared"
	"folio/shared/cache/mocks"
	"folio/shared/constant"
	"folio/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOptionalBool(t *testing.T) {
	for _, raw := range []string{"true", "1", "T", "TRUE"} {
		got := shared.OptionalBool(raw)
		require.NotNil(t, got, raw)
		assert.True(t, *got, raw)
	}

	for _, raw := range []string{"false", "0", "F"} {
		got := shared.OptionalBool(raw)
		require.NotNil(t, got, raw)
		assert.False(t, *got, raw)
	}

	assert.Nil(t, shared.OptionalBool(""))
	assert.Nil(t, shared.OptionalBool("maybe"))
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, expected int
	}{
		{0, 10, 1},
		{100, 0, 1},
		{100, -5, 1},
		{100, 10, 10},
		{101, 10, 11},
		{1, 10, 1},
		{10, 10, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

type updateCounter struct {
	Label     *string `db:"label"`
	Value     *int    `db:"value"`
	Published *bool   `db:"published"`
	Suffix    string  `db:"suffix"`
	Ignored   string
	Internal  string `db:"-"`
}

func TestTransformFields(t *testing.T) {
	label := "Weddings"
	zero := 0
	published := false

	changes := shared.TransformFields(updateCounter{
		Label:     &label,
		Value:     &zero,
		Published: &published,
		Ignored:   "x",
		Internal:  "y",
	})

	assert.Equal(t, "Weddings", changes["label"])
	assert.Equal(t, 0, changes["value"])
	assert.Equal(t, false, changes["published"])
	assert.NotContains(t, changes, "suffix")
	assert.NotContains(t, changes, "Ignored")
	assert.NotContains(t, changes, "-")
	assert.Contains(t, changes, constant.FieldUpdatedAt)
}

func TestTransformFields_PointerToStruct(t *testing.T) {
	changes := shared.TransformFields(&updateCounter{Suffix: "+"})

	assert.Len(t, changes, 2)
	assert.Equal(t, "+", changes["suffix"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "gallery", shared.BuildCacheKey("gallery"))
	assert.Equal(t, "event:evt-1:images", shared.BuildCacheKey("event", "evt-1", "images"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByField("title", "beach", "")

	first := shared.BuildCacheKeyWithQuery("gallery", params, filter)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("gallery", params, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("gallery", dto.QueryParams{Page: 2, Limit: 10}, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("gallery", params, shared.FilterByField("title", "dunes", "")))
	assert.Regexp(t, `^gallery:[0-9a-f]+$`, first)
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("evt-1", "id", "events")

	where, args := group.Where()

	assert.Equal(t, "(events.id = :p0)", where)
	assert.Equal(t, "evt-1", args["p0"])
	assert.Equal(t, []string{"id"}, group.Columns())
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCache(ctrl)

	store.EXPECT().Clear(gomock.Any(), "gallery"+constant.Asterix).Return(nil)
	shared.InvalidateCaches(context.Background(), store, "gallery")

	store.EXPECT().Clear(gomock.Any(), "event"+constant.Asterix).Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), store, "event")
}
