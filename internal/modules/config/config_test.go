package config

import (
	"os"
	"testing"
	"time"

	"pump_bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "config.json", cfg.SettingsFile)
	assert.Equal(t, time.Minute, cfg.ScanInterval)
	assert.Equal(t, 10, cfg.ScanConcurrency)
	assert.Equal(t, []string{"ALPHA", "WEB3", "AI", "BOT"}, cfg.ExcludedKeywords)
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("SCAN_INTERVAL", "5m")
	t.Setenv("SCAN_CONCURRENCY", "3")
	t.Setenv("EXCLUDED_KEYWORDS", "FOO, BAR,")
	t.Setenv("TELEGRAM_TOKEN", "42:token")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.ScanInterval)
	assert.Equal(t, 3, cfg.ScanConcurrency)
	assert.Equal(t, []string{"FOO", "BAR"}, cfg.ExcludedKeywords)
	assert.Equal(t, "42:token", cfg.Telegram.Token)
}

func TestNewConfigBadEnvFallsBack(t *testing.T) {
	t.Setenv("SCAN_INTERVAL", "soon")
	t.Setenv("SCAN_CONCURRENCY", "-1")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.ScanInterval)
	assert.Equal(t, 10, cfg.ScanConcurrency)
}
