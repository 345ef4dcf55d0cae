package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("PollInterval converts seconds to duration", func(t *testing.T) {
		cfg := &Config{PollIntervalSeconds: 60}
		assert.Equal(t, 60*time.Second, cfg.PollInterval())
	})

	t.Run("SiteURL returns configured site without region", func(t *testing.T) {
		cfg := &Config{LinkUpSite: "https://api.libreview.io"}
		assert.Equal(t, "https://api.libreview.io", cfg.SiteURL())
	})

	t.Run("SiteURL switches to regional host", func(t *testing.T) {
		cfg := &Config{LinkUpSite: "https://api.libreview.io", LinkUpRegion: "eu"}
		assert.Equal(t, "https://api-eu.libreview.io", cfg.SiteURL())
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LinkUpSite:          "https://api.libreview.io",
			PollIntervalSeconds: 60,
		}
	}

	t.Run("accepts a valid config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects malformed site URL", func(t *testing.T) {
		cfg := valid()
		cfg.LinkUpSite = "not a url"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects aggressive poll interval", func(t *testing.T) {
		cfg := valid()
		cfg.PollIntervalSeconds = 5
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects short API token", func(t *testing.T) {
		cfg := valid()
		cfg.APIToken = "short"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads config with defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("REDIS_URL", "redis://localhost:6379")
		t.Setenv("LINKUP_EMAIL", "user@example.com")
		t.Setenv("LINKUP_PASSWORD", "secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://api.libreview.io", cfg.LinkUpSite)
		assert.Equal(t, 60, cfg.PollIntervalSeconds)
		assert.True(t, cfg.ScrapeLogbook)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("loads custom values", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("REDIS_URL", "redis://localhost:6379")
		t.Setenv("LINKUP_EMAIL", "user@example.com")
		t.Setenv("LINKUP_PASSWORD", "secret")
		t.Setenv("PORT", "3000")
		t.Setenv("LINKUP_REGION", "eu")
		t.Setenv("SCRAPE_LOGBOOK", "false")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "eu", cfg.LinkUpRegion)
		assert.False(t, cfg.ScrapeLogbook)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("fails without required values", func(t *testing.T) {
		for _, key := range []string{"DATABASE_URL", "REDIS_URL", "LINKUP_EMAIL", "LINKUP_PASSWORD"} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}

		_, err := Load()
		assert.Error(t, err)
	})
}
