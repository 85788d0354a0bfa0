package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 10, cfg.Security.HashCost)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 300, cfg.Redis.CacheTTL)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("DB_NAME", "accounts_test")
	t.Setenv("HASH_COST", "12")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "accounts_test", cfg.DB.Name)
	assert.Equal(t, 12, cfg.Security.HashCost)
	assert.Equal(t, "9090", cfg.App.HTTPPort)
}

func TestLoadConfig_UnparsableHashCost(t *testing.T) {
	t.Setenv("HASH_COST", "not-a-number")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	// The hasher constructor maps out-of-range costs back to the default.
	assert.Equal(t, 0, cfg.Security.HashCost)
}

func TestConfig_Validate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	cfg.DB.Host = ""
	assert.Error(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     "5433",
		User:     "svc",
		Password: "pw",
		Name:     "accounts",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db.local user=svc password=pw dbname=accounts port=5433 sslmode=disable",
		cfg.DSN(),
	)
}
