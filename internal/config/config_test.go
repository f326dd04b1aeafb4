package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "GIN_MODE", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
		"JWT_SECRET", "JWT_EXPIRATION_HOURS", "DATABASE_URL",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_PUBLIC_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/kampus")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, ":3333", cfg.HTTPAddress())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, "postgres://u:p@localhost:5432/kampus", cfg.DatabaseURL)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.False(t, cfg.S3.Enabled())
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_MissingSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/kampus")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_DSNFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "kampus")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "kampuskitap")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=kampus password=pw dbname=kampuskitap sslmode=disable", cfg.DatabaseURL)
}

func TestLoad_MissingDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_HOST", "db")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/kampus")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("JWT_EXPIRATION_HOURS", "24")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://kampuskitap.app ,")
	t.Setenv("S3_BUCKET", "images")
	t.Setenv("S3_PUBLIC_URL", "https://cdn.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, []string{"http://localhost:5173", "https://kampuskitap.app"}, cfg.CORSOrigins)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "https://cdn.example.com", cfg.S3.PublicURL)
}

func TestLoad_InvalidExpirationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/kampus")
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiration)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "JWT_EXPIRATION_HOURS")
}

func TestLoad_UnknownGinModeIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/kampus")
	t.Setenv("GIN_MODE", "prod")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.GinMode)
	assert.Len(t, cfg.Warnings, 1)
}
