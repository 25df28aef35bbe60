// Package permissions holds the role table consulted by the RBAC middleware. The table is
// embedded from permissions.json.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission restricts one route pattern and method to a set of roles.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// PermissionData lists per-endpoint role restrictions. Endpoints without an entry accept the
// Default roles; Skip turns role checks off entirely.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Default   []string     `json:"default"`
	Skip      bool         `json:"skip"`
}

func normalizePath(path string) string {
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		return trimmed
	}

	return "/"
}

// FindPermissions matches a route pattern, ignoring a trailing slash, so /invites and /invites/
// resolve to the same entry. The zero Permission means no entry.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = normalizePath(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return normalizePath(rp.Path) == path && strings.EqualFold(rp.Method, method)
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// RolesFor returns the roles allowed on a route and whether the route skips role checks.
func (r *PermissionData) RolesFor(path, method string) ([]string, bool) {
	if r.Skip {
		return nil, true
	}

	entry := r.FindPermissions(path, method)
	if entry.Skip {
		return nil, true
	}

	if len(entry.Permissions) > 0 {
		return entry.Permissions, false
	}

	return r.Default, false
}

// Allows reports whether role may call method on path. A route with no roles configured at all
// is open to any authenticated caller.
func (r *PermissionData) Allows(path, method, role string) bool {
	roles, skip := r.RolesFor(path, method)

	return skip || len(roles) == 0 || slices.Contains(roles, role)
}

func (r *PermissionData) validate() error {
	for i, entry := range r.Endpoints {
		if !strings.HasPrefix(entry.Path, "/") {
			return fmt.Errorf("endpoint %d: path %q must start with /", i, entry.Path)
		}

		switch strings.ToUpper(entry.Method) {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return fmt.Errorf("endpoint %d: unsupported method %q", i, entry.Method)
		}

		if !entry.Skip && len(entry.Permissions) == 0 {
			return fmt.Errorf("endpoint %s %s lists no roles", entry.Method, entry.Path)
		}
	}

	return nil
}

// Parse decodes and checks a permissions document.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding permissions: %w", err)
	}

	if err := data.validate(); err != nil {
		return nil, err
	}

	return &data, nil
}

// Get loads the embedded table.
func Get() (*PermissionData, error) {
	data, err := Parse(permissionsData)
	if err != nil {
		return nil, err
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Strs("default", data.Default).Msg("Loaded embedded permissions")

	return data, nil
}
