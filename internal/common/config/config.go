package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port int `env:"HTTP_PORT" envDefault:"8080"`
	}

	Telegram struct {
		BotToken    string        `env:"TELEGRAM_BOT_TOKEN,required,notEmpty"`
		PollTimeout time.Duration `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"10s"`
	}

	Store struct {
		// mongo or memory. An empty MONGO_URI with the mongo driver puts the
		// bot into store-unavailable mode.
		Driver   string        `env:"STORE_DRIVER" envDefault:"mongo"`
		MongoURI string        `env:"MONGO_URI"`
		Database string        `env:"MONGO_DATABASE" envDefault:"school_bot"`
		Timeout  time.Duration `env:"MONGO_TIMEOUT" envDefault:"5s"`
	}

	Redis struct {
		// Sessions are kept in process memory when REDIS_ADDR is empty.
		Addr       string        `env:"REDIS_ADDR"`
		Password   string        `env:"REDIS_PASSWORD" envDefault:""`
		DB         int           `env:"REDIS_DB" envDefault:"0"`
		SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	}

	Rewards struct {
		StartingCoins   int `env:"STARTING_COINS" envDefault:"20"`
		CompletionBonus int `env:"COMPLETION_BONUS" envDefault:"50"`
		ReferralBonus   int `env:"REFERRAL_BONUS" envDefault:"10"`
	}
}

// Load reads .env (when present) and the process environment. A missing bot
// token is an error; everything else has a default.
func Load() (*Config, error) {
	// .env is optional, production sets variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.Store.Driver {
	case StoreDriverMongo, StoreDriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER: %q", cfg.Store.Driver)
	}
	if cfg.Rewards.StartingCoins < 0 || cfg.Rewards.CompletionBonus < 0 || cfg.Rewards.ReferralBonus < 0 {
		return nil, fmt.Errorf("reward amounts must not be negative")
	}

	return cfg, nil
}

// StoreConfigured reports whether the profile store has credentials.
func (c *Config) StoreConfigured() bool {
	return c.Store.Driver == StoreDriverMemory || c.Store.MongoURI != ""
}
