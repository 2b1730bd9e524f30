package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrify/internal/config"
	"pantrify/internal/reconciler"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.False(t, cfg.Server.IsProduction())
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, "gcv", cfg.Vision.Provider)
	assert.Equal(t, int64(10<<20), cfg.Vision.MaxImageBytes())
	assert.Equal(t, 12, cfg.Recipes.DefaultNumber)
	assert.Equal(t, 5, cfg.RateLimit.RegisterLimit)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, reconciler.DefaultConfig(), cfg.Reconciler.ToReconcilerConfig())
	assert.Empty(t, cfg.Security.TrustedProxies)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PANTRIFY_SERVER_ENVIRONMENT", "production")
	t.Setenv("PANTRIFY_RECONCILER_LABEL_FLOOR", "0.5")
	t.Setenv("PANTRIFY_RECONCILER_HEURISTIC_THRESHOLD", "0.5")
	t.Setenv("PANTRIFY_RECONCILER_MAX_ITEMS", "10")
	t.Setenv("PANTRIFY_RECONCILER_EXCLUSION_ENABLED", "false")
	t.Setenv("PANTRIFY_CORS_ALLOWED_ORIGINS", " https://pantrify.app , ,https://www.pantrify.app")
	t.Setenv("PANTRIFY_SECURITY_TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, reconciler.StrictConfig(), cfg.Reconciler.ToReconcilerConfig())
	assert.Equal(t, []string{"https://pantrify.app", "https://www.pantrify.app"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Security.TrustedProxies)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_InvalidReconcilerSettings(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"floor above one", "PANTRIFY_RECONCILER_LABEL_FLOOR", "1.5"},
		{"heuristic below floor", "PANTRIFY_RECONCILER_HEURISTIC_THRESHOLD", "0.1"},
		{"zero cap", "PANTRIFY_RECONCILER_MAX_ITEMS", "0"},
		{"bad trusted proxy", "PANTRIFY_SECURITY_TRUSTED_PROXIES", "10.0.0.0/8,not-an-ip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}

	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=require", db.DSN())
}
