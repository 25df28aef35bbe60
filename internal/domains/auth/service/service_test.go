package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/infras/jwt"
	jwtMocks "folio/infras/jwt/mocks"
	"folio/internal/domains/auth/model/dto"
	"folio/internal/domains/auth/repository"
	"folio/internal/domains/auth/service"
	inviteDto "folio/internal/domains/invite/model/dto"
	inviteRepo "folio/internal/domains/invite/repository"
	inviteService "folio/internal/domains/invite/service"
	userDto "folio/internal/domains/user/model/dto"
	userRepo "folio/internal/domains/user/repository"
	userService "folio/internal/domains/user/service"
	"folio/internal/testsupport"
	"folio/shared/constant"
	"folio/shared/failure"
)

type fixture struct {
	auth     service.Auth
	users    userService.User
	invites  inviteService.Invite
	sessions repository.SessionStore
	tokens   jwt.JWT
}

func newFixture(t *testing.T, tokens jwt.JWT) fixture {
	t.Helper()

	stack := testsupport.NewStack(t)
	stack.Config.App.Admin.Email = "owner@example.com"
	stack.Config.App.Admin.Password = "owner-password"

	if tokens == nil {
		tokens = jwt.New(stack.Config, stack.Otel)
	}

	users := userRepo.New(stack.Datastore, stack.Otel)
	userSvc := userService.New(users, stack.Config, stack.Cache, stack.Otel)
	inviteSvc := inviteService.New(inviteRepo.New(stack.Datastore, stack.Otel), stack.Config, stack.Otel)
	sessions := repository.NewSessionStore(stack.Datastore, stack.Otel)

	return fixture{
		auth:     service.New(users, userSvc, inviteSvc, sessions, stack.Config, stack.Otel, tokens),
		users:    userSvc,
		invites:  inviteSvc,
		sessions: sessions,
		tokens:   tokens,
	}
}

func TestAuthService_BootstrapLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	res, err := f.auth.Login(ctx, dto.LoginRequest{Email: "Owner@Example.com", Password: "owner-password"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, constant.BootstrapAdminID, res.User.ID)
	assert.Equal(t, constant.RoleSuperAdmin, res.User.Role)

	claims, err := f.tokens.ValidateToken(ctx, res.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.SessionID, claims.SessionID)

	me, err := f.auth.Me(ctx, claims.SessionID)
	require.NoError(t, err)
	assert.True(t, me.Bootstrap)

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "owner@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "owner-password"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_LogoutEndsSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	res, err := f.auth.Login(ctx, dto.LoginRequest{Email: "owner@example.com", Password: "owner-password"})
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, res.User.SessionID))

	_, err = f.sessions.Get(ctx, res.User.SessionID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	_, err = f.auth.Me(ctx, res.User.SessionID)
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	_, err = f.auth.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: res.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_RefreshRotatesSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	first, err := f.auth.Login(ctx, dto.LoginRequest{Email: "owner@example.com", Password: "owner-password"})
	require.NoError(t, err)

	second, err := f.auth.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.User.SessionID, second.User.SessionID)
	assert.Equal(t, first.User.ID, second.User.ID)

	_, err = f.auth.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: first.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	_, err = f.auth.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: first.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_ConcurrentRefreshSucceedsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	login, err := f.auth.Login(ctx, dto.LoginRequest{Email: "owner@example.com", Password: "owner-password"})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)

	for range 6 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := f.auth.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
			if err == nil {
				succeeded.Add(1)

				return
			}

			assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	invite, err := f.invites.Create(ctx, inviteDto.CreateInviteRequest{Email: "sam@example.com"}, constant.BootstrapAdminID)
	require.NoError(t, err)

	_, err = f.auth.Signup(ctx, dto.SignupRequest{Token: invite.Token, Email: "other@example.com", Password: "password123"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	res, err := f.auth.Signup(ctx, dto.SignupRequest{Token: invite.Token, Email: "sam@example.com", Password: "password123", FullName: "Sam"})
	require.NoError(t, err)
	assert.Equal(t, constant.RoleAdmin, res.User.Role)
	assert.False(t, res.User.Bootstrap)

	_, err = f.auth.Signup(ctx, dto.SignupRequest{Token: invite.Token, Email: "sam@example.com", Password: "password123"})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	login, err := f.auth.Login(ctx, dto.LoginRequest{Email: "sam@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	member, err := f.users.Get(ctx, res.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, member.LastLogin)

	require.NoError(t, f.auth.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"}, res.User.ID))

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "sam@example.com", Password: "password123"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "sam@example.com", Password: "password456"})
	require.NoError(t, err)
}

func TestAuthService_SignupReleasesInvite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.users.Create(ctx, "existing", userDto.CreateUserRequest{Email: "taken@example.com", Password: "password123"})
	require.NoError(t, err)

	invite, err := f.invites.Create(ctx, inviteDto.CreateInviteRequest{}, constant.BootstrapAdminID)
	require.NoError(t, err)

	_, err = f.auth.Signup(ctx, dto.SignupRequest{Token: invite.Token, Email: "taken@example.com", Password: "password123"})
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	valid, err := f.invites.Validate(ctx, invite.Token)
	require.NoError(t, err)
	assert.Equal(t, constant.RoleAdmin, valid.Role)
}

func TestAuthService_TokenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := jwtMocks.NewMockJWT(ctrl)
	f := newFixture(t, tokens)

	tokens.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any()).Return(nil, errors.New("signing failed"))

	_, err := f.auth.Login(context.Background(), dto.LoginRequest{Email: "owner@example.com", Password: "owner-password"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}
