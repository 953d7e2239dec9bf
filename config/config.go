// Package config holds the server configuration, parsed from CLI flags with
// environment variable fallbacks. A .env file in the working directory is
// loaded first so local development doesn't need exported variables.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values.
type Config struct {
	Port        int    // HTTP listen port
	DBPath      string // SQLite database path (":memory:" for ephemeral)
	LogLevel    string // debug|info|warn|error
	Verbose     bool   // pretty log output for development
	CORSOrigins string // comma-separated allowed origins, "*" for any
	DailyLimit  int    // default max events per calendar day
	SeedDemo    bool   // seed demo rules/add-ons/staff on startup
}

// Parse creates a Config by parsing CLI flags from the provided args.
// Environment variables PORT, DB_PATH, LOG_LEVEL, CORS_ORIGINS and
// DAILY_EVENT_LIMIT serve as fallbacks when the corresponding flags are
// not explicitly set.
func Parse(args []string) (*Config, error) {
	// Best-effort: a missing .env file is not an error.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("staffing-engine", flag.ContinueOnError)

	cfg := &Config{}
	fs.IntVar(&cfg.Port, "port", 8080, "HTTP listen port")
	fs.StringVar(&cfg.DBPath, "db", "./data/catering.db", "SQLite database path")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "pretty log output for development")
	fs.StringVar(&cfg.CORSOrigins, "cors-origins", "*", "comma-separated allowed CORS origins")
	fs.IntVar(&cfg.DailyLimit, "daily-limit", 3, "default max events per calendar day")
	fs.BoolVar(&cfg.SeedDemo, "seed-demo", false, "seed demo rules, add-ons and staff on startup")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Track which flags were explicitly provided on the command line.
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// Environment variable fallback: only apply when the flag was not set.
	if !explicit["port"] {
		if v := os.Getenv("PORT"); v != "" {
			p, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
			}
			cfg.Port = p
		}
	}
	if !explicit["db"] {
		if v := os.Getenv("DB_PATH"); v != "" {
			cfg.DBPath = v
		}
	}
	if !explicit["log-level"] {
		if v := os.Getenv("LOG_LEVEL"); v != "" {
			cfg.LogLevel = v
		}
	}
	if !explicit["cors-origins"] {
		if v := os.Getenv("CORS_ORIGINS"); v != "" {
			cfg.CORSOrigins = v
		}
	}
	if !explicit["daily-limit"] {
		if v := os.Getenv("DAILY_EVENT_LIMIT"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid DAILY_EVENT_LIMIT %q: %w", v, err)
			}
			cfg.DailyLimit = n
		}
	}

	return cfg, nil
}

// Validate checks that all config values are acceptable.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be in [1, 65535], got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path must not be empty")
	}
	if c.DailyLimit < 1 {
		return fmt.Errorf("daily-limit must be >= 1, got %d", c.DailyLimit)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
