package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, "disable", cfg.DB.SSLMode)
		assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("TOKEN_TTL", "90m")
		t.Setenv("DB_NAME", "other")
		t.Setenv("DB_SSLMODE", "  REQUIRE ")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
		assert.Equal(t, "other", cfg.DB.Name)
		assert.Equal(t, "require", cfg.DB.SSLMode)
	})

	t.Run("Production rejects default secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Production accepts explicit secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "a-very-long-production-secret-value-123")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{"Valid development", Config{Port: "8080", JWTSecret: "short", TokenTTL: time.Hour, AppEnv: "development"}, false},
		{"Missing port", Config{JWTSecret: "secret", TokenTTL: time.Hour}, true},
		{"Missing secret", Config{Port: "8080", TokenTTL: time.Hour}, true},
		{"Zero ttl", Config{Port: "8080", JWTSecret: "secret"}, true},
		{"Production short secret", Config{Port: "8080", JWTSecret: "short", TokenTTL: time.Hour, AppEnv: "prod"}, true},
		{"Production strong secret", Config{Port: "8080", JWTSecret: "a-very-long-production-secret-value-123", TokenTTL: time.Hour, AppEnv: "production"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		err := LoadEnv(filepath.Join(t.TempDir(), "nope.env"))
		assert.Error(t, err)
	})

	t.Run("Reads file without overriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GQLTOUR_TEST_A=from-file\nGQLTOUR_TEST_B=from-file\n"), 0o600))
		t.Setenv("GQLTOUR_TEST_B", "from-env")
		t.Cleanup(func() { os.Unsetenv("GQLTOUR_TEST_A") })

		require.NoError(t, LoadEnv(path))
		assert.Equal(t, "from-file", os.Getenv("GQLTOUR_TEST_A"))
		assert.Equal(t, "from-env", os.Getenv("GQLTOUR_TEST_B"))
	})
}
