package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear anything the host environment may have set
	for _, key := range []string{"INBOX_ENV", "PORT", "LOG_LEVEL", "DATABASE_URL", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 5600, cfg.Port)
	assert.Equal(t, "inbox.db", cfg.DatabaseURL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("INBOX_ENV", "production")
	t.Setenv("PORT", "5601")
	t.Setenv("DATABASE_URL", "/var/lib/inbox/inbox.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://inbox.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 5601, cfg.Port)
	assert.Equal(t, "/var/lib/inbox/inbox.db", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://inbox.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_BadPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5600, cfg.Port)
}

func TestLoad_RejectsUnknownEnv(t *testing.T) {
	t.Setenv("INBOX_ENV", "staging")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INBOX_ENV")
}

func TestLoad_RejectsOutOfRangePort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}
