package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"deal_analyzer/internal/domain"
	"deal_analyzer/pkg/errcodes"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

type Config struct {
	App       App
	Analysis  Analysis
	AI        AI
	Telegram  Telegram
	Scheduler Scheduler
	Redis     Redis
	Servers   Servers
}

type App struct {
	Name     string     `env:"APP_NAME"    envDefault:"deal-analyzer" validate:"required"`
	Version  string     `env:"APP_VERSION" envDefault:"dev"`
	LogLevel slog.Level `env:"LOG_LEVEL"   envDefault:"info"`
}

type Servers struct {
	MetricsListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ProbeListenAddress   string `env:"PROBE_LISTEN_ADDRESS"   envDefault:":8081"`
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	return Parse()
}

// Parse builds the config from the process environment only.
func Parse() (Config, error) {
	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, domain.WrapError(err, errcodes.ConfigError, "env.Parse")
	}

	config.Telegram.Headline = correctNewlines(config.Telegram.Headline)

	if err := validate.Struct(config); err != nil {
		return Config{}, domain.WrapError(err, errcodes.ConfigError, "validate.Struct")
	}

	return config, nil
}

func correctNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
