package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[storage]
driver = "postgres"

[database]
host = "db"
dbname = "turf_test"

[admin]
token = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "Asia/Kolkata", cfg.Server.Timezone)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, SessionDriverMemory, cfg.Session.Driver)
	assert.Equal(t, PaymentProviderMock, cfg.Payment.Provider)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Contains(t, cfg.Database.DSN(), "dbname=turf_test")
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "from-env")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	path := writeConfig(t, `
[payment]
provider = "stripe"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Admin.Token)
	assert.Equal(t, "sk_test_123", cfg.Payment.SecretKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{name: "defaults with token", mutate: func(c *Config) {}, ok: true},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Driver = "mysql" }},
		{name: "unknown session", mutate: func(c *Config) { c.Session.Driver = "file" }},
		{name: "unknown payment", mutate: func(c *Config) { c.Payment.Provider = "paypal" }},
		{name: "stripe without key", mutate: func(c *Config) { c.Payment.Provider = PaymentProviderStripe }},
		{name: "missing admin token", mutate: func(c *Config) { c.Admin.Token = "" }},
		{name: "zero session ttl", mutate: func(c *Config) { c.Session.TTL = 0 }},
		{name: "unknown timezone", mutate: func(c *Config) { c.Server.Timezone = "Mars/Olympus" }},
		{name: "utc timezone", mutate: func(c *Config) { c.Server.Timezone = "UTC" }, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Admin.Token = "token"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestServerConfig_Location(t *testing.T) {
	loc, err := ServerConfig{Timezone: "Asia/Kolkata"}.Location()
	require.NoError(t, err)

	// 20:00 UTC уже следующий день на площадке
	evening := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-16", evening.In(loc).Format("2006-01-02"))

	_, err = ServerConfig{Timezone: "Nowhere/City"}.Location()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_EnvOverridesTimezone(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "token")
	t.Setenv("SERVER_TIMEZONE", "Europe/London")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", cfg.Server.Timezone)
}
