package permissions_test

import (
	"net/http"
	"testing"

	"folio/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPermissions(t *testing.T) {
	data, err := permissions.Get()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"admin", "superadmin"}, data.Default)
	assert.False(t, data.Skip)

	assert.True(t, data.Allows("/v1/admin/invites/prune", http.MethodPost, "superadmin"))
	assert.False(t, data.Allows("/v1/admin/invites/prune", http.MethodPost, "admin"))
	assert.True(t, data.Allows("/v1/admin/gallery", http.MethodPost, "admin"))
	assert.False(t, data.Allows("/v1/admin/gallery", http.MethodPost, "guest"))
}

func TestFindPermissionsIgnoresTrailingSlash(t *testing.T) {
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/admin/invites", Method: http.MethodGet, Permissions: []string{"superadmin"}},
		},
	}

	assert.Equal(t, []string{"superadmin"}, data.FindPermissions("/v1/admin/invites/", http.MethodGet).Permissions)
	assert.Equal(t, []string{"superadmin"}, data.FindPermissions("/v1/admin/invites", "get").Permissions)
	assert.Empty(t, data.FindPermissions("/v1/admin/invites", http.MethodPost).Permissions)
}

func TestRolesFor(t *testing.T) {
	data := &permissions.PermissionData{
		Default: []string{"admin"},
		Endpoints: []permissions.Permission{
			{Path: "/v1/admin/users/{id}", Method: http.MethodDelete, Permissions: []string{"superadmin"}},
			{Path: "/v1/admin/ping", Method: http.MethodGet, Skip: true},
		},
	}

	roles, skip := data.RolesFor("/v1/admin/users/{id}", http.MethodDelete)
	assert.Equal(t, []string{"superadmin"}, roles)
	assert.False(t, skip)

	roles, skip = data.RolesFor("/v1/admin/pricing", http.MethodGet)
	assert.Equal(t, []string{"admin"}, roles)
	assert.False(t, skip)

	_, skip = data.RolesFor("/v1/admin/ping", http.MethodGet)
	assert.True(t, skip)

	data.Skip = true
	assert.True(t, data.Allows("/v1/admin/users/{id}", http.MethodDelete, "admin"))
}

func TestParseRejectsBadEntries(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints":[{"path":"v1/x","method":"GET","permissions":["admin"]}]}`))
	assert.ErrorContains(t, err, "must start with /")

	_, err = permissions.Parse([]byte(`{"endpoints":[{"path":"/v1/x","method":"TRACE","permissions":["admin"]}]}`))
	assert.ErrorContains(t, err, "unsupported method")

	_, err = permissions.Parse([]byte(`{"endpoints":[{"path":"/v1/x","method":"GET"}]}`))
	assert.ErrorContains(t, err, "lists no roles")

	_, err = permissions.Parse([]byte(`{`))
	assert.Error(t, err)
}
