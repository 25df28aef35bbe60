package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domains/content/model/dto"
	"folio/internal/domains/content/repository"
	"folio/internal/domains/content/service"
	"folio/internal/testsupport"
	"folio/shared/failure"
)

func TestContentService_Upsert(t *testing.T) {
	ctx := context.Background()
	stack := testsupport.NewStack(t)
	svc := service.New(repository.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel)

	_, err := svc.GetByName(ctx, "hero")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	first, created, err := svc.Upsert(ctx, "hero", dto.UpsertContentRequest{Title: "Light & story", Body: "We photograph people."})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.Upsert(ctx, "hero", dto.UpsertContentRequest{Title: "Light and story", Body: "We photograph people."})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Light and story", second.Title)

	_, _, err = svc.Upsert(ctx, "about", dto.UpsertContentRequest{Body: "Since 2012."})
	require.NoError(t, err)

	sections, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, []string{"about", "hero"}, []string{sections[0].Name, sections[1].Name})

	hero, err := svc.GetByName(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, "Light and story", hero.Title)

	require.NoError(t, svc.Delete(ctx, "hero"))

	err = svc.Delete(ctx, "hero")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestContentService_RejectsBadNames(t *testing.T) {
	stack := testsupport.NewStack(t)
	svc := service.New(repository.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel)

	for _, name := range []string{"", "Hero", "has space", "a/b"} {
		_, _, err := svc.Upsert(context.Background(), name, dto.UpsertContentRequest{})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err), name)
	}
}
