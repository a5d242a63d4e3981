package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission describes how one route is authenticated. The zero value requires
// a bearer token with a live session.
type Permission struct {
	Path     string `json:"path"`
	Method   string `json:"method"`
	Skip     bool   `json:"skip"`
	Optional bool   `json:"optional"`
	Internal bool   `json:"internal"`
}

func (p Permission) key() string {
	return p.Method + " " + p.Path
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	// Skip turns authentication off for every route.
	Skip bool `json:"skip"`

	index map[string]Permission
}

// FindPermissions looks up a route pattern as registered on the router.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[Permission{Path: path, Method: method}.key()]
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}

func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, errors.Wrap(err, "decode permissions")
	}

	permissions.index = make(map[string]Permission, len(permissions.Endpoints))

	for _, endpoint := range permissions.Endpoints {
		key := endpoint.key()

		if _, dup := permissions.index[key]; dup {
			return nil, fmt.Errorf("duplicate permission for %s", key)
		}

		if modes(endpoint) > 1 {
			return nil, fmt.Errorf("permission for %s sets more than one of skip, optional and internal", key)
		}

		permissions.index[key] = endpoint
	}

	return &permissions, nil
}

func modes(p Permission) (n int) {
	for _, set := range []bool{p.Skip, p.Optional, p.Internal} {
		if set {
			n++
		}
	}

	return n
}
