// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// AutoMigrate applies pending migrations at startup when true.
	AutoMigrate bool

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret is the HS256 key bearer tokens are signed with. Required.
	JWTSecret string

	// JWTIssuer, when set, must match the iss claim of every token.
	JWTIssuer string

	// RedisURL selects the shared rate limit store. Empty means in-process.
	RedisURL string

	// ImportRateLimit is the number of POST /imports allowed per user per minute.
	// Zero disables the limit. Defaults to 10.
	ImportRateLimit int

	// MaxImportBytes caps any request body. Defaults to 5 MiB.
	MaxImportBytes int64

	// DedupWindowDays is how far back imports look for duplicates. Defaults to 90.
	DedupWindowDays int

	// LedgerLocation is the zone naive ledger timestamps are read in.
	// Defaults to America/Sao_Paulo.
	LedgerLocation *time.Location
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that do not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		JWTIssuer:   os.Getenv("JWT_ISSUER"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	var err error
	if cfg.AutoMigrate, err = strconv.ParseBool(getEnv("AUTO_MIGRATE", "false")); err != nil {
		invalid = append(invalid, "AUTO_MIGRATE")
	}
	if cfg.ImportRateLimit, err = strconv.Atoi(getEnv("IMPORT_RATE_LIMIT", "10")); err != nil || cfg.ImportRateLimit < 0 {
		invalid = append(invalid, "IMPORT_RATE_LIMIT")
	}
	if cfg.MaxImportBytes, err = strconv.ParseInt(getEnv("MAX_IMPORT_BYTES", "5242880"), 10, 64); err != nil || cfg.MaxImportBytes <= 0 {
		invalid = append(invalid, "MAX_IMPORT_BYTES")
	}
	if cfg.DedupWindowDays, err = strconv.Atoi(getEnv("DEDUP_WINDOW_DAYS", "90")); err != nil || cfg.DedupWindowDays < 0 {
		invalid = append(invalid, "DEDUP_WINDOW_DAYS")
	}
	if cfg.LedgerLocation, err = time.LoadLocation(getEnv("LEDGER_TIMEZONE", "America/Sao_Paulo")); err != nil {
		invalid = append(invalid, "LEDGER_TIMEZONE")
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(invalid, ", "))
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
