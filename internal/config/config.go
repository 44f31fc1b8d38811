// Package config loads application configuration from the environment.
//
// CONFIG AS A STRUCT:
// Rather than sprinkling os.Getenv calls through main.go, all settings live
// in one struct with `env:` tags. The caarlos0/env library reads the tags,
// parses the values into the right Go types (int, string, ...) and applies
// the defaults — one call, no hand-rolled strconv.Atoi error handling.
//
// .env SUPPORT:
// godotenv loads a local .env file into the process environment before
// parsing. Real environment variables always win over .env values, so
// production deployments simply don't ship a .env file.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the server.
type Config struct {
	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"3333"`

	// DBPath is the SQLite database file. Use ":memory:" for an ephemeral DB.
	DBPath string `env:"DB_PATH" envDefault:"data/diet.db"`

	// SessionCookieMaxAge is how long (in seconds) the browser keeps the
	// session cookie. Default: 7 days. Note this only limits the COOKIE —
	// the token itself never expires server-side.
	SessionCookieMaxAge int `env:"SESSION_COOKIE_MAX_AGE" envDefault:"604800"`

	// LogLevel: debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from a .env file (if present) and the process
// environment. A missing .env file is not an error — it's optional
// developer convenience.
func Load() (Config, error) {
	// Ignore the error: godotenv returns one when .env doesn't exist,
	// which is the normal case outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("config: invalid PORT %d", cfg.Port)
	}

	return cfg, nil
}
