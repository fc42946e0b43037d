package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret-0123456789abcdefghij")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret-0123456789abcdefghij")
}

func TestLoadDefaults(t *testing.T) {
	setSecrets(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "mongodb", cfg.Store.Provider)
	assert.Equal(t, "laptrack", cfg.Store.Database)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, "100-M", cfg.RateLimit.Rate)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Empty(t, cfg.Server.TrustedProxies)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	setSecrets(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.Store.MongoURI)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.Server.TrustedProxies)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL)
}

func TestLoadFromFile(t *testing.T) {
	setSecrets(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store_provider: memory\nrate_limit: 10-S\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Provider)
	assert.Equal(t, "10-S", cfg.RateLimit.Rate)
}

func TestValidateRejectsMissingSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")
	_, err := Load("")
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "short")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret-0123456789abcdefghij")
	_, err = Load("")
	assert.ErrorContains(t, err, "at least 32 bytes")

	t.Setenv("JWT_SECRET", "the-same-secret-0123456789abcdefghij")
	t.Setenv("REFRESH_TOKEN_SECRET", "the-same-secret-0123456789abcdefghij")
	_, err = Load("")
	assert.ErrorContains(t, err, "must differ")
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	setSecrets(t)
	t.Setenv("STORE_PROVIDER", "dynamodb")
	_, err := Load("")
	assert.ErrorContains(t, err, "unsupported STORE_PROVIDER")
}
