package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultAPIBaseURL is the local development backend, including the /api
// prefix the server mounts its routes under.
const DefaultAPIBaseURL = "http://localhost:4000/api"

type Config struct {
	// APIBaseURL is the base address of the expense tracker backend.
	APIBaseURL string

	// StatePath is the SQLite file holding the session token and
	// view preferences.
	StatePath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		APIBaseURL: getEnv("ROOMSPLIT_API_URL", DefaultAPIBaseURL),
		StatePath:  getEnv("ROOMSPLIT_STATE_PATH", defaultStatePath()),
		LogLevel:   getEnv("ROOMSPLIT_LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if u, err := url.Parse(c.APIBaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", u.Scheme))
	} else if u.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid API base URL '%s': missing host", c.APIBaseURL))
	}

	if c.StatePath == "" {
		errs = append(errs, "state path cannot be empty")
	} else {
		dir := filepath.Dir(c.StatePath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create state directory '%s': %v", dir, err))
				}
			}
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

// SlogLevel maps the configured level name to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// defaultStatePath places the state file under the user config
// directory, falling back to the working directory when the home
// directory cannot be resolved.
func defaultStatePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "roomsplit", "state.db")
	}
	return "./roomsplit-state.db"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
