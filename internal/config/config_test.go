package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults applied from environment only", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("BACKEND_BASE_URL", "http://cairogo.example.com/")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://cairogo.example.com", cfg.Backend.BaseURL)
		assert.Equal(t, 12, cfg.Catalog.PageSize)
		assert.Equal(t, 200, cfg.Catalog.PriceLow)
		assert.Equal(t, 500, cfg.Catalog.PriceMedium)
		assert.Equal(t, 1000, cfg.Catalog.PriceHigh)
		assert.Equal(t, "redis", cfg.Storage.Driver)
		assert.Equal(t, "cairogo_sid", cfg.Session.CookieName)
		assert.Equal(t, 15*time.Second, cfg.Backend.RequestTimeout)
		assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	})

	t.Run("overrides from environment", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("BACKEND_BASE_URL", "http://api.local")
		t.Setenv("STORAGE_DRIVER", "Badger")
		t.Setenv("CATALOG_PAGE_SIZE", "24")
		t.Setenv("PRICE_TIER_HIGH", "1500")
		t.Setenv("API_PORT", "9090")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "badger", cfg.Storage.Driver)
		assert.Equal(t, 24, cfg.Catalog.PageSize)
		assert.Equal(t, 1500, cfg.Catalog.PriceHigh)
		assert.Equal(t, 9090, cfg.Server.Port)
	})

	t.Run("missing backend url", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("BACKEND_BASE_URL", "")

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "BACKEND_BASE_URL")
	})
}
