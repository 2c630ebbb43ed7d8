package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		for _, k := range []string{
			"HEALTHLOG_ENV", "HEALTHLOG_PAGE_SIZE", "HEALTHLOG_API_URL",
			"HEALTHLOG_REQUEST_TIMEOUT_SECONDS", "HEALTHLOG_LOG_LEVEL",
			"HEALTHLOG_RATE_LIMIT_PER_SECOND", "HEALTHLOG_NO_COLOR",
		} {
			t.Setenv(k, "")
		}

		cfg := Load()

		assert.Equal(t, "production", cfg.App.Env)
		assert.Equal(t, 10, cfg.App.PageSize)
		assert.Equal(t, "http://localhost:3000/api/v1", cfg.API.BaseURL)
		assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
		assert.Equal(t, 5, cfg.API.RateLimitPerSecond)
		assert.Equal(t, "info", cfg.Logger.Level)
		assert.False(t, cfg.App.NoColor)
		assert.False(t, cfg.IsDevelopment())
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("HEALTHLOG_ENV", "development")
		t.Setenv("HEALTHLOG_PAGE_SIZE", "25")
		t.Setenv("HEALTHLOG_API_URL", "https://api.example.test")
		t.Setenv("HEALTHLOG_REQUEST_TIMEOUT_SECONDS", "3")
		t.Setenv("HEALTHLOG_NO_COLOR", "1")

		cfg := Load()

		assert.True(t, cfg.IsDevelopment())
		assert.Equal(t, 25, cfg.App.PageSize)
		assert.Equal(t, "https://api.example.test", cfg.API.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.API.RequestTimeout)
		assert.True(t, cfg.App.NoColor)
	})

	t.Run("Bad int keeps default", func(t *testing.T) {
		t.Setenv("HEALTHLOG_PAGE_SIZE", "lots")
		assert.Equal(t, 10, Load().App.PageSize)
	})
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("HEALTHLOG_FLAG", "true")
	assert.True(t, GetEnvBool("HEALTHLOG_FLAG", false))
	t.Setenv("HEALTHLOG_FLAG", "nope")
	assert.False(t, GetEnvBool("HEALTHLOG_FLAG", false))
}
