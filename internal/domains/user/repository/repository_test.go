package repository_test

import (
	"context"
	"testing"
	"time"

	"folio/internal/domains/user/model"
	"folio/internal/domains/user/repository"
	"folio/internal/testsupport"
	gModel "folio/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_EmailLookups(t *testing.T) {
	stack := testsupport.NewStack(t)
	repo := repository.New(stack.Datastore, stack.Otel)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, model.User{
		ID:       "user-1",
		Email:    "ayu@studio.example",
		FullName: "Ayu",
		Role:     "admin",
		Metadata: gModel.NewMetadata(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
	}))

	user, err := repo.GetByEmail(ctx, "  Ayu@Studio.Example ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	taken, err := repo.EmailTaken(ctx, "AYU@studio.example")
	require.NoError(t, err)
	assert.True(t, taken)

	nobody, err := repo.GetByEmail(ctx, "nobody@studio.example")
	require.NoError(t, err)
	assert.Empty(t, nobody.ID)

	taken, err = repo.EmailTaken(ctx, "nobody@studio.example")
	require.NoError(t, err)
	assert.False(t, taken)
}
