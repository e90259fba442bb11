package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.False(t, cfg.Cookie.Secure)
	assert.True(t, cfg.Blog.HideMissingPosts)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name: "server override",
			envVars: map[string]string{
				"SERVER_PORT":             "8080",
				"SERVER_SHUTDOWN_TIMEOUT": "3s",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "8080", cfg.Server.Port)
				assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
			},
		},
		{
			name: "database override",
			envVars: map[string]string{
				"DATABASE_DRIVER":       "sqlite",
				"DATABASE_DSN":          "blog.db",
				"DATABASE_AUTO_MIGRATE": "false",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "sqlite", cfg.Database.Driver)
				assert.Equal(t, "blog.db", cfg.Database.DSN)
				assert.False(t, cfg.Database.AutoMigrate)
			},
		},
		{
			name: "redis override",
			envVars: map[string]string{
				"REDIS_ENABLED":  "false",
				"REDIS_ADDR":     "redis:6380",
				"REDIS_PASSWORD": "pw",
				"REDIS_DB":       "2",
			},
			expected: func(cfg *Config) {
				assert.False(t, cfg.Redis.Enabled)
				assert.Equal(t, "redis:6380", cfg.Redis.Addr)
				assert.Equal(t, "pw", cfg.Redis.Password)
				assert.Equal(t, 2, cfg.Redis.DB)
			},
		},
		{
			name: "token and blog override",
			envVars: map[string]string{
				"JWT_TTL":                 "1h",
				"COOKIE_SECURE":           "true",
				"BLOG_HIDE_MISSING_POSTS": "false",
				"BCRYPT_COST":             "12",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, time.Hour, cfg.JWT.TTL)
				assert.True(t, cfg.Cookie.Secure)
				assert.False(t, cfg.Blog.HideMissingPosts)
				assert.Equal(t, 12, cfg.BcryptCost)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			tt.expected(cfg)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{name: "unknown driver", envVars: map[string]string{"DATABASE_DRIVER": "mongo"}},
		{name: "non-positive ttl", envVars: map[string]string{"JWT_TTL": "0s"}},
		{name: "malformed ttl", envVars: map[string]string{"JWT_TTL": "soon"}},
		{name: "malformed redis db", envVars: map[string]string{"REDIS_DB": "zero"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
