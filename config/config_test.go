package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "SERVICE_TOKEN", "AUTH_MODE", "JWT_SECRET",
		"ALLOWED_ORIGINS", "R2_BUCKET_NAME", "ACHIEVEMENT_SWEEP_INTERVAL", "SEED_CATALOG"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	assert.Equal(t, "5200", cfg.Port)
	assert.Equal(t, AuthModeGateway, cfg.AuthMode)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.AchievementSweepInterval)
	assert.True(t, cfg.SeedCatalog)
	assert.False(t, cfg.UploadsEnabled())
	assert.ElementsMatch(t, []string{"DATABASE_URL", "SERVICE_TOKEN"}, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://localhost/fitness")
	t.Setenv("AUTH_MODE", "JWT")
	t.Setenv("JWT_SECRET", "shh")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("R2_BUCKET_NAME", "images")
	t.Setenv("ACHIEVEMENT_SWEEP_INTERVAL", "0")
	t.Setenv("SEED_CATALOG", "false")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, AuthModeJWT, cfg.AuthMode)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Zero(t, cfg.AchievementSweepInterval)
	assert.False(t, cfg.SeedCatalog)
	assert.True(t, cfg.UploadsEnabled())
	assert.Empty(t, cfg.Validate())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ACHIEVEMENT_SWEEP_INTERVAL", "soon")
	t.Setenv("SEED_CATALOG", "maybe")
	t.Setenv("AUTH_MODE", "basic")
	t.Setenv("DATABASE_URL", "postgres://localhost/fitness")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.AchievementSweepInterval)
	assert.True(t, cfg.SeedCatalog)
	assert.Equal(t, []string{"AUTH_MODE (gateway|jwt)"}, cfg.Validate())
}
