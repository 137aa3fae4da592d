package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
)

const (
	// DefaultSQLiteDSN is the zero-setup datastore used when DATABASE_DSN is
	// not configured. Fine for development, not meant for production.
	DefaultSQLiteDSN = "teamup.db"

	devSessionSecret = "dev-session-secret"
)

type Config struct {
	Port          string   `env:"PORT" envDefault:"8080"`
	DatabaseDSN   string   `env:"DATABASE_DSN"`
	SessionSecret string   `env:"SESSION_SECRET"`
	AdminHandles  []string `env:"ADMIN_HANDLES" envSeparator:","`
	Env           string   `env:"APP_ENV" envDefault:"development"`
	LogLevel      string   `env:"LOG_LEVEL"`

	ReadTimeoutSec  int `env:"READ_TIMEOUT" envDefault:"10"`
	WriteTimeoutSec int `env:"WRITE_TIMEOUT" envDefault:"20"`
	IdleTimeoutSec  int `env:"IDLE_TIMEOUT" envDefault:"60"`

	SeedDemo bool `env:"DB_SEED"`
}

// IsDev reports whether the app runs with development defaults.
func (c Config) IsDev() bool { return c.Env != "production" }

// Load reads configuration from the environment. A missing DSN or session
// secret does not abort startup: safe development defaults are substituted
// and reported as warnings for the caller to log once logging is up.
func Load() (Config, []string, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, nil, fmt.Errorf("parse environment: %w", err)
	}

	// env vars set to an empty string count as unset
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	var warnings []string
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = DefaultSQLiteDSN
		warnings = append(warnings, "DATABASE_DSN not set, falling back to local SQLite file "+DefaultSQLiteDSN)
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = devSessionSecret
		warnings = append(warnings, "SESSION_SECRET not set, using the insecure development secret")
	}

	cfg.AdminHandles = cleanHandles(cfg.AdminHandles)
	return cfg, warnings, nil
}

// cleanHandles drops empty entries and surrounding whitespace from the admin
// allow-list, so ADMIN_HANDLES="alice, bob," parses as expected.
func cleanHandles(in []string) []string {
	out := make([]string, 0, len(in))
	for _, h := range in {
		h = strings.TrimSpace(h)
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}
