package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every knob the service reads from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// DBURL switches persistence to Postgres; when empty the service keeps
	// a local SQLite file instead.
	DBURL      string `env:"DB_URL"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"notesnap.db"`

	JWTSecret    string `env:"JWT_SECRET_KEY,required,notEmpty"`
	CookieDomain string `env:"COOKIE_DOMAIN"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	GeminiAPIKey  string        `env:"GEMINI_API_KEY,required,notEmpty"`
	GeminiBaseURL string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	GeminiTimeout time.Duration `env:"GEMINI_TIMEOUT" envDefault:"60s"`
}

// IsDevelopment reports whether the service runs without a configured
// cookie domain, i.e. against localhost.
func (c Config) IsDevelopment() bool { return c.CookieDomain == "" }

// CookieSecure reports whether session cookies should carry the Secure
// attribute. Secure cookies don't work over plain-HTTP localhost.
func (c Config) CookieSecure() bool { return !c.IsDevelopment() }

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
