package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "user", cfg.SignupDefaultRole)
	assert.Equal(t, 2*time.Second, cfg.SelfDemotionSignoutDelay)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SIGNUP_DEFAULT_ROLE", "")
	t.Setenv("SELF_DEMOTION_SIGNOUT_DELAY", "500ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.SignupDefaultRole)
	assert.Equal(t, 500*time.Millisecond, cfg.SelfDemotionSignoutDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	base := Config{JWTSecret: "s", SignupDefaultRole: "user", TempPasswordLength: 16, Timezone: "UTC"}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing secret", func(c *Config) { c.JWTSecret = " " }},
		{"unknown signup role", func(c *Config) { c.SignupDefaultRole = "manager" }},
		{"negative delay", func(c *Config) { c.SelfDemotionSignoutDelay = -time.Second }},
		{"short temp password", func(c *Config) { c.TempPasswordLength = 4 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
