package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "123:abc", RunMode: "Polling"}}
	require.NoError(t, Normalize(cfg))

	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, StateMemory, cfg.State.Backend)
}

func TestNormalizeRejects(t *testing.T) {
	cases := map[string]Config{
		"missing token": {},
		"bad run mode":  {Telegram: TelegramConfig{Token: "t", RunMode: "smoke"}},
		"webhook url":   {Telegram: TelegramConfig{Token: "t", RunMode: RunModeWebhook}},
		"bad admin id":  {Telegram: TelegramConfig{Token: "t", AdminIDs: []int64{0}}},
		"bad exclude":   {Telegram: TelegramConfig{Token: "t"}, RateLimit: RateLimitConfig{ExcludeUpdates: []string{"poll"}}},
		"redis addr":    {Telegram: TelegramConfig{Token: "t"}, State: StateConfig{Backend: "redis"}},
		"bad backend":   {Telegram: TelegramConfig{Token: "t"}, State: StateConfig{Backend: "etcd"}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, Normalize(&cfg))
		})
	}
}

func TestNormalizeRedisPrefix(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "t"}, State: StateConfig{Backend: " Redis "}}
	cfg.State.Redis.Addr = "localhost:6379"
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, StateRedis, cfg.State.Backend)
	assert.Equal(t, "petshop:session", cfg.State.Redis.Prefix)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "telegram:\n  token: from-file\n  admin_ids: [1, 2]\nrate_limit:\n  interval_ms: 300\n  exclude_updates: [CALLBACK]\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("BOT_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, []int64{1, 2}, cfg.Telegram.AdminIDs)
	assert.Equal(t, 300, cfg.RateLimit.IntervalMS)
	assert.Equal(t, []string{UpdateCallback}, cfg.RateLimit.ExcludeUpdates)
}

func TestReadYAMLMissingFile(t *testing.T) {
	var cfg Config
	require.NoError(t, ReadYAML(filepath.Join(t.TempDir(), "absent.yaml"), &cfg))
	require.NoError(t, ReadYAML("", &cfg))
}
