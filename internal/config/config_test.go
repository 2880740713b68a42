package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StorePostgres, cfg.OrderStore)
	assert.Equal(t, 10*time.Second, cfg.Orders.PersistTimeout)
	assert.Equal(t, 15*time.Second, cfg.Orders.NotifyTimeout)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.Redis.Addr)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"http_addr": ":9000", "order_store": "memory", "smtp_username": "file@example.com", "notify_timeout": "3s"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("SMTP_USERNAME", "env@example.com")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load([]string{"--config", path})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, StoreMemory, cfg.OrderStore)
	assert.Equal(t, "env@example.com", cfg.SMTP.Username)
	assert.Equal(t, 3*time.Second, cfg.Orders.NotifyTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{HTTPAddr: ":1", OrderStore: StoreMemory}, false},
		{"postgres with dsn", Config{HTTPAddr: ":1", OrderStore: StorePostgres, DBConnString: "postgres://x"}, false},
		{"postgres without dsn", Config{HTTPAddr: ":1", OrderStore: StorePostgres}, true},
		{"unknown driver", Config{HTTPAddr: ":1", OrderStore: "sheets"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			var cerr *domain.ConfigurationError
			assert.True(t, errors.As(err, &cerr), "expected ConfigurationError, got %v", err)
		})
	}
}
