package dto_test

import (
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"folio/shared/constant"
	"folio/shared/dto"
	"folio/shared/model"
	"folio/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestMetadataFromModel(t *testing.T) {
	created := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)
	meta := model.NewMetadata(created).Touched(created.Add(time.Hour))

	got := dto.MetadataFromModel(meta)

	assert.Equal(t, timezone.Format(created, constant.DateFormat), got.CreatedAt)
	assert.Equal(t, timezone.Format(created.Add(time.Hour), constant.DateFormat), got.UpdatedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		paginate bool
		expected dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=title&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "title", SortDir: dto.SortDirAsc},
		},
		{
			name:     "defaults when paginating",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "nothing set without pagination",
			expected: dto.QueryParams{},
		},
		{
			name:     "malformed numbers fall back",
			query:    "page=zero&limit=-4",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit capped",
			query:    "limit=5000",
			paginate: true,
			expected: dto.QueryParams{Page: 1, Limit: constant.MaxValueLimit},
		},
		{
			name:     "unknown sort direction ignored",
			query:    "sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/gallery?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.paginate)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 3}.Offset())
	assert.Equal(t, math.MaxInt, dto.QueryParams{Page: 92233720368547760, Limit: 100}.Offset())
	assert.Equal(t, math.MaxInt, dto.QueryParams{Page: math.MaxInt, Limit: 2}.Offset())
}

func TestQueryParams_OrDefault(t *testing.T) {
	got := dto.QueryParams{SortBy: "title"}.OrDefault(constant.FieldCreatedAt, dto.SortDirDesc)
	assert.Equal(t, dto.QueryParams{SortBy: "title", SortDir: dto.SortDirDesc}, got)

	got = dto.QueryParams{}.OrDefault("date", dto.SortDirDesc)
	assert.Equal(t, dto.QueryParams{SortBy: "date", SortDir: dto.SortDirDesc}, got)
}

func TestFilterGroup_Where(t *testing.T) {
	eventID := dto.Eq("event_id", "evt-1")
	eventID.Table = "event_images"

	where, args := dto.And(eventID, dto.Like("title", "beach")).Where()

	assert.Equal(t, "(event_images.event_id = :p0 AND LOWER(title) LIKE LOWER(:p1))", where)
	assert.Equal(t, map[string]any{"p0": "evt-1", "p1": "%beach%"}, args)
}

func TestFilterGroup_Where_SameColumnTwice(t *testing.T) {
	group := dto.And(
		dto.Filter{Field: "price", Operator: dto.FilterOperatorGreaterEq, Value: 100},
		dto.Filter{Field: "price", Operator: dto.FilterOperatorLessEq, Value: 500},
	)

	where, args := group.Where()

	assert.Equal(t, "(price >= :p0 AND price <= :p1)", where)
	assert.Equal(t, map[string]any{"p0": 100, "p1": 500}, args)
}

func TestFilterGroup_Where_In(t *testing.T) {
	where, args := dto.And(dto.In("id", []string{"a", "b"})).Where()

	assert.Equal(t, "(id IN (:p0, :p1))", where)
	assert.Len(t, args, 2)

	where, args = dto.And(dto.In("id", []string{})).Where()

	assert.Equal(t, "(FALSE)", where)
	assert.Empty(t, args)
}

func TestFilterGroup_Where_Nested(t *testing.T) {
	group := dto.And(
		dto.Eq("published", true),
		dto.Or(
			dto.Filter{Field: "rating", Operator: dto.FilterOperatorGreaterEq, Value: 4},
			dto.Filter{Field: "text", Operator: dto.FilterIsNull},
		),
	)

	where, _ := group.Where()

	assert.Equal(t, "(published = :p0 AND (rating >= :p1 OR text IS NULL))", where)
	assert.Equal(t, []string{"published", "rating", "text"}, group.Columns())
}

func TestFilterGroup_Empty(t *testing.T) {
	assert.True(t, dto.FilterGroup{}.Empty())
	assert.True(t, dto.And(dto.Or()).Empty())
	assert.False(t, dto.And(dto.Or(dto.Eq("id", "x"))).Empty())

	where, args := dto.FilterGroup{}.Where()
	assert.Empty(t, where)
	assert.Empty(t, args)
}
