package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "absence-reporting-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.Mongo.URI)
	assert.Equal(t, "absence_reporting", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout())
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 8*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 30*time.Minute, cfg.Auth.LoginSessionTTL())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MONGO_DATABASE", "absence_test")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, "absence_test", cfg.Mongo.Database)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
}

func TestDurationFallbacks(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Equal(t, 10*time.Second, MongoConfig{TimeoutSeconds: -1}.ConnectTimeout())
	assert.Equal(t, 8*time.Hour, AuthConfig{AccessTokenTTLMinutes: 0}.AccessTokenTTL())
	assert.Equal(t, 30*time.Minute, AuthConfig{LoginSessionTTLMin: 0}.LoginSessionTTL())
}
