package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port       int    `env:"PORT" envDefault:"8000"`
	APITitle   string `env:"API_TITLE" envDefault:"RestDB Microserver API"`
	APIVersion string `env:"API_VERSION" envDefault:"1.0.0"`
	DB         DBConfig
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	Username string `env:"DB_USERNAME" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Database string `env:"DB_DATABASE" envDefault:"postgres"`
	Schema   string `env:"DB_SCHEMA" envDefault:"public"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// URL builds the postgres connection string, encoding credentials and the
// database name so special characters survive.
func (c DBConfig) URL() string {
	userInfo := url.UserPassword(c.Username, c.Password)
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		userInfo.String(),
		c.Host,
		c.Port,
		url.PathEscape(c.Database),
		c.SSLMode,
	)
}

// Redacted is the loggable form of the connection target.
func (c DBConfig) Redacted() string {
	return fmt.Sprintf("postgres://%s:***@%s:%s/%s", c.Username, c.Host, c.Port, c.Database)
}
