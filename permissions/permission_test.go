package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)

	tests := []struct {
		name   string
		path   string
		method string
		want   permissions.Permission
	}{
		{
			name:   "public catalog",
			path:   "/v1/activities/{id}",
			method: http.MethodGet,
			want:   permissions.Permission{Path: "/v1/activities/{id}", Method: http.MethodGet, Skip: true},
		},
		{
			name:   "review submission requires a session",
			path:   "/v1/activities/{id}/reviews",
			method: http.MethodPost,
			want:   permissions.Permission{Path: "/v1/activities/{id}/reviews", Method: http.MethodPost},
		},
		{
			name:   "current identity is optional",
			path:   "/v1/auth/me",
			method: http.MethodGet,
			want:   permissions.Permission{Path: "/v1/auth/me", Method: http.MethodGet, Optional: true},
		},
		{
			name:   "completion is internal",
			path:   "/v1/internal/bookings/{owner}/{id}/complete",
			method: http.MethodPost,
			want: permissions.Permission{
				Path: "/v1/internal/bookings/{owner}/{id}/complete", Method: http.MethodPost, Internal: true,
			},
		},
		{
			name:   "unknown route defaults to required",
			path:   "/v1/unknown",
			method: http.MethodGet,
			want:   permissions.Permission{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, data.FindPermissions(tt.path, tt.method))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte("{"))
	assert.Error(t, err)
}

func TestParse_RejectsAmbiguousEntries(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "duplicate route",
			data: `{"endpoints":[{"path":"/v1/bookings","method":"GET"},{"path":"/v1/bookings","method":"GET","skip":true}]}`,
		},
		{
			name: "conflicting modes",
			data: `{"endpoints":[{"path":"/v1/auth/me","method":"GET","skip":true,"optional":true}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := permissions.Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParse_SameRouteDifferentMethods(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/activities/{id}/reviews","method":"GET","skip":true},
		{"path":"/v1/activities/{id}/reviews","method":"POST"}
	]}`))
	require.NoError(t, err)

	assert.True(t, data.FindPermissions("/v1/activities/{id}/reviews", http.MethodGet).Skip)
	assert.False(t, data.FindPermissions("/v1/activities/{id}/reviews", http.MethodPost).Skip)
}
