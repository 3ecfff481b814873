// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/oklog/ulid/v2"
)

type TelegramConfig struct {
	Token string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	// AppURL is the public base URL the webhook is registered under.
	AppURL string `env:"APP_URL,required,notEmpty"`
	// WebhookSecret is the opaque path segment of the webhook URL. It is
	// deliberately unrelated to the bot token and can be rotated by
	// changing the env value; when absent a fresh one is generated at
	// startup.
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL,required,notEmpty"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type WebConfig struct {
	Port int `env:"PORT" envDefault:"10000"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`   // trace|debug|info|warn|error
	Format string `env:"LOG_FORMAT" envDefault:"json"`  // json|console
}

type RouterConfig struct {
	// StoreTimeout bounds every activation-store call so a slow store can
	// never hold up webhook acknowledgments.
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`
	// Workers is the size of the update dispatch pool.
	Workers int `env:"WORKERS" envDefault:"8"`
	// RateLimit is the per-user updates-per-minute cap; 0 disables limiting.
	RateLimit    int    `env:"RATE_LIMIT" envDefault:"20"`
	PayLinkMonth string `env:"PAY_LINK_MONTH" envDefault:"https://t.me/UnionBot?start=pay_month"`
	PayLinkYear  string `env:"PAY_LINK_YEAR" envDefault:"https://t.me/UnionBot?start=pay_year"`
}

type Config struct {
	Telegram TelegramConfig
	Redis    RedisConfig
	Web      WebConfig
	Log      LogConfig
	Router   RouterConfig
}

// Load reads configuration from the environment. Absence of any required
// value is a fatal startup error by contract, so it is reported here.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// defaults
	if cfg.Router.Workers <= 0 {
		cfg.Router.Workers = 8
	}
	if cfg.Router.StoreTimeout <= 0 {
		cfg.Router.StoreTimeout = 3 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Telegram.WebhookSecret == "" {
		cfg.Telegram.WebhookSecret = ulid.Make().String()
	}

	return &cfg, nil
}
