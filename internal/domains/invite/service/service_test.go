package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domains/invite/model"
	"folio/internal/domains/invite/model/dto"
	"folio/internal/domains/invite/repository"
	"folio/internal/domains/invite/service"
	"folio/internal/testsupport"
	"folio/shared/constant"
	"folio/shared/failure"
	gModel "folio/shared/model"
	"folio/shared/timezone"
)

func newService(t *testing.T) (service.Invite, repository.Invite) {
	t.Helper()

	stack := testsupport.NewStack(t)
	repo := repository.New(stack.Datastore, stack.Otel)

	return service.New(repo, stack.Config, stack.Otel), repo
}

func TestInviteCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	invite, err := svc.Create(ctx, dto.CreateInviteRequest{Email: "sam@example.com"}, "owner")
	require.NoError(t, err)

	assert.Len(t, invite.Token, 64)
	assert.Equal(t, constant.RoleAdmin, invite.Role)
	assert.Equal(t, dto.StatusValid, invite.Status)

	expires, err := time.Parse(constant.DateFormat, invite.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, timezone.Now().Add(168*time.Hour), expires, time.Minute)

	other, err := svc.Create(ctx, dto.CreateInviteRequest{TTLHours: 1}, "owner")
	require.NoError(t, err)
	assert.NotEqual(t, invite.Token, other.Token)

	valid, err := svc.Validate(ctx, invite.Token)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", valid.Email)
}

func TestInviteLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	invite, err := svc.Create(ctx, dto.CreateInviteRequest{}, "owner")
	require.NoError(t, err)

	used, err := svc.Consume(ctx, invite.Token, "user-1")
	require.NoError(t, err)
	assert.True(t, used.Used)
	assert.Equal(t, "user-1", used.UsedBy)
	assert.NotNil(t, used.UsedAt)

	_, err = svc.Validate(ctx, invite.Token)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = svc.Consume(ctx, invite.Token, "user-2")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	require.NoError(t, svc.Release(ctx, invite.Token, "user-1"))

	_, err = svc.Validate(ctx, invite.Token)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestInviteExpired(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)

	past := timezone.Now().Add(-time.Hour)
	require.NoError(t, repo.Insert(ctx, model.InviteToken{
		ID:        "expired",
		Token:     "stale-token",
		Role:      constant.RoleAdmin,
		ExpiresAt: past,
		Metadata:  gModel.Metadata{CreatedAt: past, UpdatedAt: past},
	}))

	_, err := svc.Validate(ctx, "stale-token")
	assert.Equal(t, http.StatusGone, failure.GetCode(err))

	_, err = svc.Consume(ctx, "stale-token", "user-1")
	assert.Equal(t, http.StatusGone, failure.GetCode(err))

	invites, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, dto.StatusExpired, invites[0].Status)
}

func TestInvitePrune(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)

	fresh, err := svc.Create(ctx, dto.CreateInviteRequest{}, "owner")
	require.NoError(t, err)

	past := timezone.Now().Add(-time.Hour)
	require.NoError(t, repo.Insert(ctx, model.InviteToken{ID: "stale", Token: "stale", ExpiresAt: past}))

	usedAt := past
	require.NoError(t, repo.Insert(ctx, model.InviteToken{ID: "spent", Token: "spent", ExpiresAt: past, Used: true, UsedBy: "user-1", UsedAt: &usedAt}))

	res, err := svc.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)

	invites, err := svc.GetAll(ctx)
	require.NoError(t, err)

	ids := []string{}
	for _, invite := range invites {
		ids = append(ids, invite.ID)
	}

	assert.ElementsMatch(t, []string{fresh.ID, "spent"}, ids)

	res, err = svc.Prune(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Deleted)
}

func TestInviteRevoke(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	invite, err := svc.Create(ctx, dto.CreateInviteRequest{}, "owner")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, invite.ID))

	err = svc.Revoke(ctx, invite.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = svc.Validate(ctx, invite.Token)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
