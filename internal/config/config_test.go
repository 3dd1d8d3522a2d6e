package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"deal_analyzer/internal/config"
	"deal_analyzer/internal/domain"
	"deal_analyzer/pkg/errcodes"
)

func setRequired(t *testing.T) {
	t.Helper()

	t.Setenv("BASE_DATA_DIR", "/data")
	t.Setenv("BASE_ANALYSIS_DIR", "/analysis")
	t.Setenv("AI_API_URL", "http://ai.local/api/v1/workspace/deals/chat")
	t.Setenv("AI_API_KEY", "secret")
	t.Setenv("TELE_BOT_TOKEN", "123:abc")
	t.Setenv("TELE_CHAT_ID", "-100200300")
}

func TestParseDefaults(t *testing.T) {
	rq := require.New(t)
	setRequired(t)

	cfg, err := config.Parse()
	rq.NoError(err)

	rq.Equal("deal-analyzer", cfg.App.Name)
	rq.Equal(slog.LevelInfo, cfg.App.LogLevel)
	rq.Equal("/data", cfg.Analysis.DataDir)
	rq.InDelta(50.0, cfg.Analysis.Threshold, 1e-9)
	rq.Equal("query", cfg.AI.Mode)
	rq.Equal(2*time.Minute, cfg.AI.Timeout)
	rq.Zero(cfg.AI.CacheTTL)
	rq.Equal(4096, cfg.AI.LogFieldMaxLen)
	rq.Equal(int64(-100200300), cfg.Telegram.ChatID)
	rq.Equal(int64(-100200300), cfg.Telegram.Admin())
	rq.False(cfg.Telegram.CommandsEnabled)
	rq.Equal("00:10", cfg.Scheduler.DailyAt)
	rq.Equal(6*time.Hour, cfg.Scheduler.Interval)
	rq.True(cfg.Scheduler.RunOnStart)
	rq.False(cfg.Scheduler.RunOnce)
	rq.False(cfg.Redis.Enabled())
	rq.Equal("deal-analyzer:run-lock", cfg.Redis.LockKey)
	rq.Equal(time.Hour, cfg.Redis.LockTTL)
	rq.Equal(":9090", cfg.Servers.MetricsListenAddress)
	rq.Equal(":8081", cfg.Servers.ProbeListenAddress)
}

func TestParseOverrides(t *testing.T) {
	rq := require.New(t)
	setRequired(t)

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEAL_THRESHOLD", "35.5")
	t.Setenv("BOT_ADMIN_ID", "42")
	t.Setenv("NOTIFY_HEADLINE", `🔥 Today's Best Deals 🔥\nfresh`)
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SCHEDULE_INTERVAL", "0s")
	t.Setenv("AI_CACHE_TTL", "30m")
	t.Setenv("RUN_ONCE", "true")

	cfg, err := config.Parse()
	rq.NoError(err)

	rq.Equal(slog.LevelDebug, cfg.App.LogLevel)
	rq.InDelta(35.5, cfg.Analysis.Threshold, 1e-9)
	rq.Equal(int64(42), cfg.Telegram.Admin())
	rq.Equal("🔥 Today's Best Deals 🔥\nfresh", cfg.Telegram.Headline)
	rq.True(cfg.Redis.Enabled())
	rq.Zero(cfg.Scheduler.Interval)
	rq.Equal(30*time.Minute, cfg.AI.CacheTTL)
	rq.True(cfg.Scheduler.RunOnce)
}

func TestParseHeadline(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "escaped newline", value: `line one\nline two`, expected: "line one\nline two"},
		{name: "quotes kept", value: `Today's "hot" deals`, expected: `Today's "hot" deals`},
		{name: "markup kept", value: "Deals < 50% & <b>more</b>", expected: "Deals < 50% & <b>more</b>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			setRequired(t)
			t.Setenv("NOTIFY_HEADLINE", tc.value)

			cfg, err := config.Parse()
			rq.NoError(err)
			rq.Equal(tc.expected, cfg.Telegram.Headline)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "missing data dir", key: "BASE_DATA_DIR", value: ""},
		{name: "ai url not a url", key: "AI_API_URL", value: "not a url"},
		{name: "threshold above 100", key: "DEAL_THRESHOLD", value: "150"},
		{name: "daily at", key: "SCHEDULE_DAILY_AT", value: "25:99"},
		{name: "chat id", key: "TELE_CHAT_ID", value: "@channel"},
		{name: "negative interval", key: "SCHEDULE_INTERVAL", value: "-1h"},
		{name: "redis addr", key: "REDIS_ADDR", value: "localhost"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			setRequired(t)
			t.Setenv(tc.key, tc.value)

			_, err := config.Parse()
			rq.Error(err)
			rq.True(domain.HasCode(err, errcodes.ConfigError))
		})
	}
}
