package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("JWT_EXPIRY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN, "parseTime=true")
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db/todo")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@db/todo", cfg.Database.DSN)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfigValidation(t *testing.T) {
	valid := Config{
		Port:      "8080",
		Env:       "development",
		Database:  Database{Driver: "sqlite"},
		JWTSecret: defaultJWTSecret,
		JWTExpiry: time.Hour,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid config", func(*Config) {}, nil},
		{"missing port", func(c *Config) { c.Port = "" }, ErrEmptyPort},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mongodb" }, ErrUnsupportedDriver},
		{"zero expiry", func(c *Config) { c.JWTExpiry = 0 }, ErrInvalidJWTExpiry},
		{"default secret in production", func(c *Config) { c.Env = "production" }, ErrDefaultSecretInProduction},
		{"custom secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "a-real-secret"
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
