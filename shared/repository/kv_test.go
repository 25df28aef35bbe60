package repository_test

import (
	"context"
	"testing"
	"time"

	"folio/infras/kvstore"
	"folio/infras/otel/mocks"
	"folio/shared"
	"folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/model"
	"folio/shared/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type photo struct {
	ID    string  `db:"id"    json:"id"`
	Album string  `db:"album" json:"album"`
	Title string  `db:"title" json:"title"`
	Rank  int     `db:"rank"  json:"rank"`
	Note  *string `db:"note" json:"note"`
	model.Metadata
}

const photoTable = "photos"

func newPhotoRepo(t *testing.T) (repository.Store[photo], *kvstore.Tables) {
	t.Helper()

	tables := kvstore.NewTables(kvstore.NewMemory(), "test", mocks.NewOtel())

	return repository.NewKV[photo]("photo", photoTable, "id", tables, mocks.NewOtel()), tables
}

func seed(t *testing.T, repo repository.Store[photo], photos ...photo) {
	t.Helper()

	for _, p := range photos {
		require.NoError(t, repo.Insert(context.Background(), p))
	}
}

var ignoreMetadata = cmpopts.IgnoreFields(photo{}, "Metadata")

func titles(photos []photo) []string {
	out := make([]string, len(photos))
	for i, p := range photos {
		out[i] = p.Title
	}

	return out
}

func TestKV_InsertAssignsIdentifierAndTimestamp(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	seed(t, repo, photo{Title: "a"}, photo{Title: "b"}, photo{Title: "c"})

	all, err := repo.GetAll(ctx, dto.QueryParams{}, dto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	seen := map[string]bool{}
	for _, p := range all {
		assert.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "identifier %s is not unique", p.ID)
		assert.False(t, p.CreatedAt.IsZero())

		seen[p.ID] = true
	}
}

func TestKV_InsertKeepsExplicitValues(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	created := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	seed(t, repo, photo{ID: "p1", Title: "kept", Metadata: model.Metadata{CreatedAt: created, UpdatedAt: created}})

	got, err := repo.Get(ctx, shared.FilterByID("p1", "id", photoTable))
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	assert.True(t, created.Equal(got.CreatedAt))

	err = repo.Insert(ctx, photo{ID: "p1", Title: "duplicate"})
	assert.Equal(t, 409, failure.GetCode(err))

	err = repo.InsertBulk(ctx, []photo{{ID: "p2"}, {ID: "p2"}})
	assert.Equal(t, 409, failure.GetCode(err))

	count, err := repo.Count(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestKV_DeleteLeavesOtherRowsUntouched(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	note := "golden hour"
	seed(t, repo,
		photo{ID: "1", Album: "wedding", Title: "vows", Rank: 3, Note: &note},
		photo{ID: "2", Album: "wedding", Title: "rings", Rank: 1},
		photo{ID: "3", Album: "portrait", Title: "studio", Rank: 2},
	)

	before, err := repo.GetAll(ctx, dto.QueryParams{}, dto.FilterGroup{})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, shared.FilterByID("2", "id", photoTable)))

	after, err := repo.GetAll(ctx, dto.QueryParams{}, dto.FilterGroup{})
	require.NoError(t, err)

	want := []photo{before[0], before[2]}
	if diff := cmp.Diff(want, after); diff != "" {
		t.Errorf("rows after delete mismatch (-want +got):\n%s", diff)
	}
}

func TestKV_EqFilterPreservesInsertionOrder(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	seed(t, repo,
		photo{Album: "wedding", Title: "w1"},
		photo{Album: "portrait", Title: "p1"},
		photo{Album: "wedding", Title: "w2"},
		photo{Album: "event", Title: "e1"},
		photo{Album: "wedding", Title: "w3"},
	)

	got, err := repo.GetAll(ctx, dto.QueryParams{}, shared.FilterByField("album", "wedding", photoTable))
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"w1", "w2", "w3"}, titles(got)); diff != "" {
		t.Errorf("eq filter mismatch (-want +got):\n%s", diff)
	}
}

func TestKV_OrderDirectionsAreReversed(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	seed(t, repo,
		photo{Title: "a", Rank: 2},
		photo{Title: "b", Rank: 1},
		photo{Title: "c", Rank: 2},
		photo{Title: "d", Rank: 3},
		photo{Title: "e", Rank: 1},
	)

	asc, err := repo.GetAll(ctx, dto.QueryParams{SortBy: "rank", SortDir: dto.SortDirAsc}, dto.FilterGroup{})
	require.NoError(t, err)

	desc, err := repo.GetAll(ctx, dto.QueryParams{SortBy: "rank", SortDir: dto.SortDirDesc}, dto.FilterGroup{})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "e", "a", "c", "d"}, titles(asc))

	reversed := make([]photo, len(desc))
	for i := range desc {
		reversed[len(desc)-1-i] = desc[i]
	}

	if diff := cmp.Diff(asc, reversed); diff != "" {
		t.Errorf("desc is not the reverse of asc (-asc +reversed desc):\n%s", diff)
	}
}

func TestKV_SortByTimestamp(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	seed(t, repo,
		photo{Title: "later", Metadata: model.Metadata{CreatedAt: base.Add(500 * time.Millisecond)}},
		photo{Title: "first", Metadata: model.Metadata{CreatedAt: base}},
	)

	got, err := repo.GetAll(ctx, dto.QueryParams{SortBy: "created_at", SortDir: dto.SortDirAsc}, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "later"}, titles(got))
}

func TestKV_Pagination(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c", "d", "e"} {
		seed(t, repo, photo{Title: title})
	}

	page2, err := repo.GetAll(ctx, dto.QueryParams{Page: 2, Limit: 2}, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, titles(page2))

	page3, err := repo.GetAll(ctx, dto.QueryParams{Page: 3, Limit: 2}, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, titles(page3))

	page9, err := repo.GetAll(ctx, dto.QueryParams{Page: 9, Limit: 2}, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, page9)

	farOut, err := repo.GetAll(ctx, dto.QueryParams{Page: 92233720368547760, Limit: 100}, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, farOut)
}

func TestKV_Operators(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	note := "backlit"
	seed(t, repo,
		photo{ID: "1", Album: "Wedding", Title: "Beach vows", Rank: 1, Note: &note},
		photo{ID: "2", Album: "wedding", Title: "Rings", Rank: 2},
		photo{ID: "3", Album: "portrait", Title: "Studio", Rank: 5},
	)

	tests := []struct {
		name   string
		filter dto.FilterGroup
		want   []string
	}{
		{
			name:   "like is case insensitive",
			filter: dto.FilterGroup{Filters: []any{dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: "BEACH"}}},
			want:   []string{"Beach vows"},
		},
		{
			name:   "in",
			filter: dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []string{"1", "3"}}}},
			want:   []string{"Beach vows", "Studio"},
		},
		{
			name:   "not eq",
			filter: dto.FilterGroup{Filters: []any{dto.Filter{Field: "album", Operator: dto.FilterOperatorNotEq, Value: "wedding"}}},
			want:   []string{"Beach vows", "Studio"},
		},
		{
			name: "range",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "rank", Operator: dto.FilterOperatorGreaterEq, Value: 2},
					dto.Filter{Field: "rank", Operator: dto.FilterOperatorLessEq, Value: 5},
				},
			},
			want: []string{"Rings", "Studio"},
		},
		{
			name:   "is null",
			filter: dto.FilterGroup{Filters: []any{dto.Filter{Field: "note", Operator: dto.FilterIsNull}}},
			want:   []string{"Rings", "Studio"},
		},
		{
			name:   "is not null",
			filter: dto.FilterGroup{Filters: []any{dto.Filter{Field: "note", Operator: dto.FilterIsNotNull}}},
			want:   []string{"Beach vows"},
		},
		{
			name: "nested or",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "id", Operator: dto.FilterOperatorEq, Value: "2"},
					dto.FilterGroup{Filters: []any{dto.Filter{Field: "rank", Operator: dto.FilterOperatorGreaterEq, Value: 5}}},
				},
			},
			want: []string{"Rings", "Studio"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetAll(ctx, dto.QueryParams{}, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestKV_Update(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	seed(t, repo, photo{ID: "1", Title: "old", Rank: 1}, photo{ID: "2", Title: "other", Rank: 2})

	require.NoError(t, repo.Update(ctx, map[string]any{"title": "new", "rank": 7}, shared.FilterByID("1", "id", photoTable)))

	got, err := repo.GetAll(ctx, dto.QueryParams{}, dto.FilterGroup{})
	require.NoError(t, err)

	want := []photo{{ID: "1", Title: "new", Rank: 7}, {ID: "2", Title: "other", Rank: 2}}
	if diff := cmp.Diff(want, got, ignoreMetadata); diff != "" {
		t.Errorf("rows after update mismatch (-want +got):\n%s", diff)
	}

	err = repo.Update(ctx, map[string]any{"missing": 1}, shared.FilterByID("1", "id", photoTable))
	assert.Error(t, err)
}

func TestKV_Validation(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	_, err := repo.GetAll(ctx, dto.QueryParams{SortBy: "password", SortDir: dto.SortDirAsc}, dto.FilterGroup{})
	assert.Equal(t, 400, failure.GetCode(err))

	_, err = repo.GetAll(ctx, dto.QueryParams{}, shared.FilterByField("missing", "x", photoTable))
	assert.Equal(t, 400, failure.GetCode(err))

	assert.Error(t, repo.Delete(ctx, dto.FilterGroup{}))

	_, err = repo.Exist(ctx, dto.FilterGroup{})
	assert.Error(t, err)

	missing, err := repo.Get(ctx, shared.FilterByID("nope", "id", photoTable))
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestKV_CorruptTable(t *testing.T) {
	repo, tables := newPhotoRepo(t)
	ctx := context.Background()

	require.NoError(t, tables.Store().Set(ctx, tables.Namespace().Table(photoTable), []byte("[{"), 0))

	_, err := repo.GetAll(ctx, dto.QueryParams{}, dto.FilterGroup{})
	assert.ErrorIs(t, err, kvstore.ErrCorrupt)
}
