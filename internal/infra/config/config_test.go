package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 2, cfg.Ledger.Difficulty)
	require.Equal(t, uint64(0), cfg.Ledger.MaxSealAttempts)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"empty address", func(cfg *Config) { cfg.HTTP.Address = "" }},
		{"zero difficulty", func(cfg *Config) { cfg.Ledger.Difficulty = 0 }},
		{"excessive difficulty", func(cfg *Config) { cfg.Ledger.Difficulty = 12 }},
		{"negative cache ttl", func(cfg *Config) { cfg.Cache.TTL = -time.Second }},
		{"valkey without addr", func(cfg *Config) { cfg.Cache.Valkey.Enabled = true }},
		{"audit without schedule", func(cfg *Config) { cfg.Audit.Schedule = " " }},
		{"rate limit without rpm", func(cfg *Config) { cfg.HTTP.RateLimit.RequestsPerMinute = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("LEDGER_DIFFICULTY", "3")
	t.Setenv("LEDGER_MAX_SEAL_ATTEMPTS", "500000")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("AUDIT_ENABLED", "false")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := defaultConfig()
	applyEnvOverrides(cfg)

	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 3, cfg.Ledger.Difficulty)
	require.Equal(t, uint64(500000), cfg.Ledger.MaxSealAttempts)
	require.Equal(t, 90*time.Second, cfg.Cache.TTL)
	require.False(t, cfg.Audit.Enabled)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}
