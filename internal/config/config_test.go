package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/union-tracker/internal/domain"
)

func TestLoad_DefaultsFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "app-secret")
	t.Setenv("JWT_ADMIN_SECRET", "admin-secret")
	t.Setenv("STORE_DRIVER", "Memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Query.DefaultLimit)
	assert.Equal(t, domain.CountScopeFiltered, cfg.Query.CountScope)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, time.Hour, cfg.RateLimit.Window)
	assert.Equal(t, "stream:union:events", cfg.Events.Stream)
	assert.Equal(t, "geocode-warmer", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 20, cfg.Worker.BatchSize)
	assert.False(t, cfg.Worker.Enabled)
	assert.Equal(t, ":5000", cfg.GetServerAddr())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		c := &Config{Auth: AuthConfig{Secret: "a", AdminSecret: "b"}}
		c.applyDefaults()
		return c
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing secret", func(t *testing.T) {
		c := valid()
		c.Auth.Secret = ""
		assert.ErrorContains(t, c.Validate(), "JWT_SECRET")
	})

	t.Run("missing admin secret", func(t *testing.T) {
		c := valid()
		c.Auth.AdminSecret = ""
		assert.ErrorContains(t, c.Validate(), "JWT_ADMIN_SECRET")
	})

	t.Run("shared secret", func(t *testing.T) {
		c := valid()
		c.Auth.AdminSecret = c.Auth.Secret
		assert.ErrorContains(t, c.Validate(), "must differ")
	})

	t.Run("unknown driver", func(t *testing.T) {
		c := valid()
		c.Store.Driver = "postgres"
		assert.ErrorContains(t, c.Validate(), "STORE_DRIVER")
	})

	t.Run("unknown count scope", func(t *testing.T) {
		c := valid()
		c.Query.CountScope = "page"
		assert.ErrorContains(t, c.Validate(), "PAGINATION_COUNT_SCOPE")
	})
}
