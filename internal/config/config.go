package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path or DSN
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Addr string // listen address, e.g. ":3003"
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	Secret        string // JWT signing secret
	TokenLifetime time.Duration
}

// Load builds the configuration from the process environment. A .env file in
// the working directory is applied first if present. Missing JWT_SECRET or
// DATABASE_PATH is a fatal configuration error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	lifetime := 24 * time.Hour
	if v := os.Getenv("TOKEN_LIFETIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_LIFETIME: %w", err)
		}
		lifetime = d
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Path: os.Getenv("DATABASE_PATH"),
		},
		HTTP: HTTPConfig{
			Addr: ":" + getEnv("PORT", "3003"),
		},
		Auth: AuthConfig{
			Secret:        os.Getenv("JWT_SECRET"),
			TokenLifetime: lifetime,
		},
	}

	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("DATABASE_PATH environment variable is not set")
	}
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// String returns a string representation of the config (secret is masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, Auth: *** (masked) ***}", c.Database.Path, c.HTTP.Addr)
}
