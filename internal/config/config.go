// Package config reads server settings from the environment and an optional .env file.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds every setting the server and terminal UI read.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	GinMode   string `env:"GIN_MODE" envDefault:"debug"`
	DBPath    string `env:"DB_PATH" envDefault:"portfolio.db"`
	AssetsDir string `env:"ASSETS_DIR" envDefault:"./assets"`

	SMTP SMTPConfig `envPrefix:"SMTP_"`
	// ToEmail receives contact form messages.
	ToEmail string `env:"TO_EMAIL" envDefault:"yukesshwaran6@gmail.com"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	VisitorRetention time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`
	SplashDuration   time.Duration `env:"SPLASH_DURATION" envDefault:"2s"`
}

type SMTPConfig struct {
	Host string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"PORT" envDefault:"587"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
}

// Configured reports whether mail can be sent.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Pass != ""
}

// Addr is host:port.
func (s SMTPConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Load reads envFile (when it exists) and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, errors.Wrapf(err, "loading %s", envFile)
			}
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parsing environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that have no safe fallback.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.VisitorRetention <= 0 {
		return errors.New("VISITOR_RETENTION must be positive")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return errors.Errorf("GIN_MODE %q is not one of debug, release, test", c.GinMode)
	}
	return nil
}

// AdminCredentials returns the admin login, falling back to development defaults.
// The second result is false when a default was used.
func (c *Config) AdminCredentials() (user, pass string, explicit bool) {
	user, pass, explicit = c.AdminUsername, c.AdminPassword, true
	if user == "" {
		user, explicit = "admin", false
	}
	if pass == "" {
		pass, explicit = "admin123", false
	}
	return user, pass, explicit
}
