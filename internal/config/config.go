// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the Fixture Desk server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitRequests per RateLimitWindow per client IP. Zero disables.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// StaffTokens maps a bearer token to the staff member's display name.
	// Set STAFF_TOKENS to "token=Name,token2=Name 2".
	StaffTokens map[string]string

	// NATSURL enables event publishing when non-empty.
	NATSURL string

	// NATSSubjectPrefix is prepended to event subjects. Defaults to "fixtures".
	NATSSubjectPrefix string

	// RequireKnownTeams rejects fixtures naming teams absent from the
	// team directory. Defaults to false.
	RequireKnownTeams bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first variable that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		NATSURL:           os.Getenv("NATS_URL"),
		NATSSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "fixtures"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 1<<20); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRequests, err = getInt("RATE_LIMIT_REQUESTS", 120); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RequireKnownTeams, err = getBool("REQUIRE_KNOWN_TEAMS", false); err != nil {
		return Config{}, err
	}
	if cfg.StaffTokens, err = parseTokens(os.Getenv("STAFF_TOKENS")); err != nil {
		return Config{}, err
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

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
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

// parseTokens parses "token=Name" pairs separated by commas.
func parseTokens(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range splitCSV(s) {
		token, name, ok := strings.Cut(pair, "=")
		token, name = strings.TrimSpace(token), strings.TrimSpace(name)
		if !ok || token == "" || name == "" {
			return nil, fmt.Errorf("STAFF_TOKENS: malformed entry %q, want token=Name", pair)
		}
		out[token] = name
	}
	return out, nil
}
