// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"STARBOARD_PORT" envDefault:"8080"`
	DBPath   string `env:"STARBOARD_DB_PATH" envDefault:"starboard.db"`
	LogLevel string `env:"STARBOARD_LOG_LEVEL" envDefault:"info"`

	// Timezone anchors every "today" computation; it is the family's zone,
	// never the server's or a client's.
	Timezone string `env:"STARBOARD_TZ" envDefault:"America/New_York"`

	// FamilyKey is the document key the whole family state lives under.
	FamilyKey string `env:"STARBOARD_FAMILY_KEY" envDefault:"family"`

	TelegramToken  string `env:"STARBOARD_TELEGRAM_TOKEN"`
	TelegramChatID string `env:"STARBOARD_TELEGRAM_CHAT_ID"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
