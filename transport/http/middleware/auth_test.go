package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"folio/infras/jwt"
	"folio/internal/domains/auth/model"
	"folio/internal/domains/auth/repository"
	"folio/internal/testsupport"
	"folio/permissions"
	"folio/shared/constant"
	"folio/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	handler  http.Handler
	tokens   jwt.JWT
	sessions repository.SessionStore
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()

	stack := testsupport.NewStack(t)
	stack.Config.App.APIKey = "internal-key"

	tokens := jwt.New(stack.Config, stack.Otel)
	sessions := repository.NewSessionStore(stack.Datastore, stack.Otel)

	perms := &permissions.PermissionData{
		Default: []string{constant.RoleAdmin, constant.RoleSuperAdmin},
		Endpoints: []permissions.Permission{
			{Path: "/v1/admin/invites/{id}", Method: http.MethodDelete, Permissions: []string{constant.RoleSuperAdmin}},
		},
	}

	authRole := middleware.NewAuthRoleMiddleware(tokens, sessions, stack.Otel, perms, stack.Config)

	ok := func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		w.Header().Set("X-Role", role)
		w.WriteHeader(http.StatusNoContent)
	}

	r := chi.NewRouter()
	r.Route("/v1/admin", func(admin chi.Router) {
		admin.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

		admin.Route("/invites", func(invites chi.Router) {
			invites.Delete("/{id}", ok)
		})
		admin.Route("/gallery", func(gallery chi.Router) {
			gallery.Delete("/{id}", ok)
		})
	})

	return authFixture{handler: r, tokens: tokens, sessions: sessions}
}

func (f authFixture) signIn(t *testing.T, role string) (string, string) {
	t.Helper()

	ctx := context.Background()
	session := model.Session{
		ID:        "session-" + role,
		UserID:    "user-" + role,
		Email:     role + "@example.com",
		Role:      role,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, f.sessions.Save(ctx, session))

	pair, err := f.tokens.GenerateTokenPair(ctx, jwt.Subject{
		SessionID: session.ID,
		UserID:    session.UserID,
		Email:     session.Email,
		Role:      session.Role,
	})
	require.NoError(t, err)

	return pair.AccessToken, session.ID
}

func (f authFixture) do(method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	return rec
}

func bearer(token string) map[string]string {
	return map[string]string{constant.RequestHeaderAuthorization: "Bearer " + token}
}

func TestAuthRequiresToken(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(http.MethodDelete, "/v1/admin/gallery/g1", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodDelete, "/v1/admin/gallery/g1", bearer("not-a-jwt"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsEndedSession(t *testing.T) {
	f := newAuthFixture(t)

	token, sessionID := f.signIn(t, constant.RoleAdmin)

	rec := f.do(http.MethodDelete, "/v1/admin/gallery/g1", bearer(token))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, constant.RoleAdmin, rec.Header().Get("X-Role"))

	require.NoError(t, f.sessions.Delete(context.Background(), sessionID))

	rec = f.do(http.MethodDelete, "/v1/admin/gallery/g1", bearer(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRBACRestrictsSuperadminRoutes(t *testing.T) {
	f := newAuthFixture(t)

	adminToken, _ := f.signIn(t, constant.RoleAdmin)
	superToken, _ := f.signIn(t, constant.RoleSuperAdmin)

	rec := f.do(http.MethodDelete, "/v1/admin/invites/i1", bearer(adminToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodDelete, "/v1/admin/invites/i1", bearer(superToken))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAPIKey(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(http.MethodDelete, "/v1/admin/invites/i1", map[string]string{constant.RequestHeaderAPIKey: "internal-key"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, constant.RoleSuperAdmin, rec.Header().Get("X-Role"))

	rec = f.do(http.MethodDelete, "/v1/admin/invites/i1", map[string]string{constant.RequestHeaderAPIKey: "wrong"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
