package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "GRID_SIZE", "PLACEMENT_ATTEMPTS", "REGENERATIONS", "JWT_EXPIRES_HOURS", "SESSION_IDLE_MINUTES", "JWT_SECRET"} {
		t.Setenv(k, "")
	}
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, 12, c.GridSize)
	assert.Equal(t, 100, c.Attempts)
	assert.Equal(t, 5, c.Regenerations)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Equal(t, 2*time.Hour, c.SessionIdle)
	assert.Equal(t, "dev_secret_change_me", c.JWTSecret)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GRID_SIZE", "15")
	t.Setenv("JWT_EXPIRES_HOURS", "2")
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 15, c.GridSize)
	assert.Equal(t, 2*time.Hour, c.TokenTTL)
}

func TestFromEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("GRID_SIZE", "twelve")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "GRID_SIZE")

	t.Setenv("GRID_SIZE", "0")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "at least 1")

	t.Setenv("GRID_SIZE", "100000000")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "at most")
}
