package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Contact mutation gate variants.
const (
	ContactsAuthEditor = "editor" // per-editor X-Editor-Username / X-Editor-Password
	ContactsAuthAdmin  = "admin"  // shared X-Admin-Password from admin_settings
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Log      LogConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver string // "postgres" or "sqlite3"
	DSN    string // connection string or SQLite file path
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address string // listen address (e.g., ":8080")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	ContactsAuth   string // ContactsAuthEditor or ContactsAuthAdmin
	PasswordScheme string // "sha256" or "bcrypt"
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json or auto
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding the process environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load loads configuration from environment variables. A database must be
// configured through DATABASE_URL or DB_DSN.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL (or DB_DSN) environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but falls back to a local SQLite file when no
// database is configured. Only use in development.
func LoadWithDefaults() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Database.DSN == "" {
		cfg.Database.Driver = "sqlite3"
		cfg.Database.DSN = "app.db"
	}
	return cfg, nil
}

func load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", ""),
			DSN:    getEnv("DB_DSN", ""),
		},
		HTTP: HTTPConfig{
			Address: getEnv("HTTP_ADDRESS", ":8080"),
		},
		Auth: AuthConfig{
			ContactsAuth:   strings.ToLower(getEnv("CONTACTS_AUTH", ContactsAuthEditor)),
			PasswordScheme: strings.ToLower(getEnv("PASSWORD_SCHEME", "sha256")),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "auto")),
		},
	}
	// DATABASE_URL wins, as in the hosted deployment.
	if url := getEnv("DATABASE_URL", ""); url != "" {
		cfg.Database.Driver = "postgres"
		cfg.Database.DSN = url
	}
	if cfg.Database.Driver == "" && cfg.Database.DSN != "" {
		cfg.Database.Driver = "sqlite3"
	}

	switch cfg.Auth.ContactsAuth {
	case ContactsAuthEditor, ContactsAuthAdmin:
	default:
		return nil, fmt.Errorf("invalid CONTACTS_AUTH %q: want %q or %q", cfg.Auth.ContactsAuth, ContactsAuthEditor, ContactsAuthAdmin)
	}
	switch cfg.Auth.PasswordScheme {
	case "sha256", "bcrypt":
	default:
		return nil, fmt.Errorf("invalid PASSWORD_SCHEME %q", cfg.Auth.PasswordScheme)
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

// String returns a string representation of the config (the DSN is masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s *** (masked) ***, HTTP: %s, ContactsAuth: %s, PasswordScheme: %s}",
		c.Database.Driver, c.HTTP.Address, c.Auth.ContactsAuth, c.Auth.PasswordScheme)
}
