package redis_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/config"
	"naturekids/infras/redis"
)

func TestNew_PingsPrimary(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	cfg := &config.Config{}
	cfg.Cache.Redis.Primary.Host = s.Host()
	cfg.Cache.Redis.Primary.Port = s.Port()

	assert.Equal(t, s.Addr(), redis.Options(cfg).Addr)

	client := redis.New(cfg)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(t.Context(), "session:abc", "1", 0).Err())
	assert.True(t, s.Exists("session:abc"))
}
