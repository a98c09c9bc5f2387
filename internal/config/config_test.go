package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
jwt:
  secret: short
quiz:
  timezone: Asia/Kolkata
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 20, cfg.Quiz.ReleaseHour)
	assert.Equal(t, 0, cfg.Quiz.ReleaseMinute)
	assert.Equal(t, 15, cfg.Quiz.TimeLimitMinutes)
	assert.Equal(t, 30*time.Second, cfg.Quiz.StandingsCacheTTL)
	assert.Equal(t, 100, cfg.Rewards.TopTierMaxRank)
	assert.Equal(t, 10000, cfg.Rewards.VoucherMaxRank)
	assert.Equal(t, 30, cfg.Rewards.VoucherValidityDays)
	assert.Equal(t, "Asia/Kolkata", cfg.Quiz.Location().String())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, "server:\n  mode: debug\n")
	t.Setenv("QUIZ_RELEASE_HOUR", "18")
	t.Setenv("QUIZ_RELEASE_MINUTE", "45")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 18, cfg.Quiz.ReleaseHour)
	assert.Equal(t, 45, cfg.Quiz.ReleaseMinute)
}

func TestLoadConfigValidation(t *testing.T) {
	cases := map[string]string{
		"short secret in release": "server:\n  mode: release\njwt:\n  secret: short\n",
		"hour out of range":       "quiz:\n  release_hour: 24\n",
		"minute out of range":     "quiz:\n  release_minute: 60\n",
		"unknown timezone":        "quiz:\n  timezone: Mars/Olympus\n",
		"thresholds out of order": "rewards:\n  top_tier_max_rank: 500\n  voucher_max_rank: 100\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLocationFallsBackToLocal(t *testing.T) {
	assert.Equal(t, time.Local, QuizConfig{}.Location())
}
