// Package config provides application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string        `env:"SITE_ADDR" envDefault:":8080"`
	OwnerEmail     string        `env:"SITE_OWNER_EMAIL" envDefault:"ms.akademiaair@gmail.com"`
	FromAddress    string        `env:"SITE_FROM_ADDRESS" envDefault:"Kontakt <onboarding@resend.dev>"`
	ResendAPIKey   string        `env:"RESEND_API_KEY"`
	ResendBaseURL  string        `env:"RESEND_BASE_URL"`
	SendTimeout    time.Duration `env:"SITE_SEND_TIMEOUT" envDefault:"15s"`
	StaticDir      string        `env:"SITE_STATIC_DIR"`
	DevFrontendURL string        `env:"SITE_DEV_FRONTEND_URL"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
