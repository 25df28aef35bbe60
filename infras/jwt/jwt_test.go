package jwt_test

import (
	"context"
	"testing"

	"folio/config"
	"folio/infras/jwt"
	"folio/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "folio"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 5
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	subject := jwt.Subject{SessionID: "sess-1", UserID: "user-1", Email: "studio@example.com", Role: "admin"}

	pair, err := svc.GenerateTokenPair(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.EqualValues(t, 300, pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	refresh, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.RefreshToken, refresh.Type)
}

func TestValidateRejectsWrongType(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, jwt.Subject{SessionID: "s", UserID: "u"})
	require.NoError(t, err)

	// the refresh token is signed with another secret
	_, err = svc.ValidateToken(ctx, pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateRejectsForeignIssuerAndExpiry(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	other := &config.Config{}
	other.App.Name = "someone-else"
	other.JWT.AccessSecret = "access-secret"
	other.JWT.RefreshSecret = "refresh-secret"
	other.JWT.AccessExpireMin = 5
	other.JWT.RefreshExpireMin = 60

	foreign, err := jwt.New(other, mocks.NewOtel()).GenerateTokenPair(ctx, jwt.Subject{SessionID: "s", UserID: "u"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, foreign.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	expired := &config.Config{}
	expired.App.Name = "folio"
	expired.JWT.AccessSecret = "access-secret"
	expired.JWT.RefreshSecret = "refresh-secret"
	expired.JWT.AccessExpireMin = -10

	stale, err := jwt.New(expired, mocks.NewOtel()).GenerateTokenPair(ctx, jwt.Subject{SessionID: "s", UserID: "u"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, stale.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}
