package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// GIVEN an environment with none of the variables set
	for _, key := range []string{"PORT", "DB_PATH", "LOG_LEVEL", "SEED"} {
		t.Setenv(key, "")
	}
	t.Setenv("PORT", "8080")

	// WHEN configuration is loaded
	cfg, err := Load()
	require.NoError(t, err)

	// THEN the defaults apply
	assert.Equal(t, ":8080", cfg.Addr())
	assert.NotEmpty(t, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.False(t, cfg.Seed)

	_, err = cfg.Logger()
	assert.NoError(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	cfg := Config{LogLevel: "shouty"}

	_, err := cfg.Logger()
	assert.Error(t, err)
}
