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

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10000.0, cfg.BaseCapital)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "deterministic", cfg.LLM.Provider)
	assert.Equal(t, "https://api.twelvedata.com", cfg.Market.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Market.Timeout)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("BASE_CAPITAL", "25000")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/etf")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("LLM_PROVIDER", "deepseek")
	t.Setenv("TWELVE_DATA_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 25000.0, cfg.BaseCapital)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "deepseek", cfg.LLM.Provider)
	assert.Equal(t, 3*time.Second, cfg.Market.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown provider", "LLM_PROVIDER", "clippy"},
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"non-numeric capital", "BASE_CAPITAL", "lots"},
		{"negative capital", "BASE_CAPITAL", "-1"},
		{"bad duration", "TWELVE_DATA_TIMEOUT", "soon"},
		{"bad log level", "LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
