package repository_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/infras/otel/mocks"
	"naturekids/internal/domains/identity/model"
	"naturekids/internal/domains/identity/repository"
	"naturekids/shared/cache"
)

func newSession(t *testing.T) (repository.Session, *miniredis.Miniredis) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return repository.NewSession(cache.NewRedisCache(client, mocks.NewOtel()), mocks.NewOtel()), s
}

func TestSession_SaveLoadDelete(t *testing.T) {
	session, s := newSession(t)
	ctx := context.Background()

	identity := model.DemoIdentity("testuser")
	require.NoError(t, session.Save(ctx, "tok-1", identity, 60))
	assert.True(t, s.Exists("session:tok-1"))
	assert.Positive(t, s.TTL("session:tok-1"))

	loaded, err := session.Load(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, identity, loaded)

	require.NoError(t, session.Delete(ctx, "tok-1"))

	_, err = session.Load(ctx, "tok-1")
	assert.ErrorIs(t, err, repository.ErrNoSession)

	require.NoError(t, session.Delete(ctx, "tok-1"))
}

func TestSession_SaveOverwritesWholesale(t *testing.T) {
	session, _ := newSession(t)
	ctx := context.Background()

	first := model.DemoIdentity("testuser")
	require.NoError(t, session.Save(ctx, "tok-1", first, 60))

	second := model.Identity{ID: "1", Username: "testuser"}
	require.NoError(t, session.Save(ctx, "tok-1", second, 60))

	loaded, err := session.Load(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
	assert.Empty(t, loaded.Email)
}

func TestSession_CorruptValueIsCleared(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not json", value: "{not-json"},
		{name: "json without identity", value: `{"bio":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, s := newSession(t)
			require.NoError(t, s.Set("session:tok-9", tt.value))

			_, err := session.Load(context.Background(), "tok-9")
			assert.ErrorIs(t, err, repository.ErrNoSession)
			assert.False(t, s.Exists("session:tok-9"))
		})
	}
}
