package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/token-auth-service/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 1440*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, time.Duration(0), cfg.Auth.TokenLeeway())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Minute, cfg.Redis.UserCacheTTL())
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, "USER", cfg.Seed.DefaultRole)
	assert.Equal(t, []config.DefaultAccount{
		{Username: "admin", Password: "password"},
		{Username: "user1", Password: "password"},
		{Username: "user2", Password: "password"},
	}, cfg.Seed.Accounts())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_TOKEN_LEEWAY_SECONDS", "5")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_USER_CACHE_TTL_SECONDS", "0")
	t.Setenv("DEFAULT_ROLE", "ADMIN")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, 5*time.Second, cfg.Auth.TokenLeeway())
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, time.Duration(0), cfg.Redis.UserCacheTTL())
	assert.Equal(t, "ADMIN", cfg.Seed.DefaultRole)
}

func TestLoad_RejectsInvalidLifetime(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "-1")

	_, err := config.Load()
	assert.Error(t, err)
}
