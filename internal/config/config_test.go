package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "farmtech.db", cfg.DBDSN)
	assert.Equal(t, 800*time.Millisecond, cfg.ChatDelay)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Empty(t, cfg.S3.Bucket)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 60, cfg.RateLimit)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", ":memory:")
	t.Setenv("CHAT_DELAY", "50ms")
	t.Setenv("S3_BUCKET", "equipment")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("RATE_LIMIT", "0")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBDSN)
	assert.Equal(t, 50*time.Millisecond, cfg.ChatDelay)
	assert.Equal(t, "equipment", cfg.S3.Bucket)
	assert.True(t, cfg.CookieSecure)
	assert.Zero(t, cfg.RateLimit)
}
