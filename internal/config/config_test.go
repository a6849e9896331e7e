package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("GIN_MODE", "release") // skip .env lookup
	t.Setenv("FIREBASE_PROJECT_ID", "playpal-test")

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "playpal", cfg.DeepLinkScheme)
		assert.Equal(t, 24*time.Hour, cfg.TransitionTTL)
		assert.Empty(t, cfg.RedisURL)
		assert.True(t, cfg.IsRelease())
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DEEP_LINK_SCHEME", "playpal-dev")
		t.Setenv("TRANSITION_TTL", "90m")
		t.Setenv("REDIS_URL", "redis://localhost:6379/2")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "playpal-dev", cfg.DeepLinkScheme)
		assert.Equal(t, 90*time.Minute, cfg.TransitionTTL)
		assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	})

	t.Run("Missing project", func(t *testing.T) {
		t.Setenv("FIREBASE_PROJECT_ID", "")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "FIREBASE_PROJECT_ID")
	})
}

func TestValidate(t *testing.T) {
	base := Config{FirebaseProjectID: "p", DeepLinkScheme: "playpal", TransitionTTL: time.Hour}

	bad := base
	bad.DeepLinkScheme = "playpal://"
	assert.Error(t, bad.Validate())

	bad = base
	bad.TransitionTTL = 0
	assert.Error(t, bad.Validate())

	assert.NoError(t, base.Validate())
}
