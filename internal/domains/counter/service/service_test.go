package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domains/counter/model/dto"
	"folio/internal/domains/counter/repository"
	"folio/internal/domains/counter/service"
	"folio/internal/testsupport"
	"folio/shared/failure"
)

func TestCounterService(t *testing.T) {
	ctx := context.Background()
	stack := testsupport.NewStack(t)
	svc := service.New(repository.New(stack.Datastore, stack.Otel), stack.Config, stack.Cache, stack.Otel)

	weddings, err := svc.Create(ctx, dto.CreateCounterRequest{Label: "Weddings", Value: 250, Suffix: "+"})
	require.NoError(t, err)

	years, err := svc.Create(ctx, dto.CreateCounterRequest{Label: "Years", Value: 12})
	require.NoError(t, err)
	assert.Equal(t, weddings.SortOrder+1, years.SortOrder)

	value := 300
	require.NoError(t, svc.Update(ctx, dto.UpdateCounterRequest{Value: &value}, weddings.ID))

	counters, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, counters, 2)
	assert.Equal(t, "Weddings", counters[0].Label)
	assert.Equal(t, 300, counters[0].Value)
	assert.Equal(t, "+", counters[0].Suffix)

	require.NoError(t, svc.Delete(ctx, years.ID))

	err = svc.Delete(ctx, years.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	counters, err = svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, counters, 1)
}
