// Package config reads the server's environment-variable configuration,
// following backend/cmd/bot-hoster/config.go's getEnv(key, default) shape,
// extended to every variable spec.md §6 names.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is the full set of environment-derived server settings.
type Config struct {
	Port                    string
	WebhookPort             string
	NodeEnv                 string
	AllowedOrigins          []string
	LogLevel                string
	SquareWebhookSignatureKey string
}

// Load reads Config from the process environment, applying the same
// defaults bot-hoster's getEnv establishes for its own two variables.
func Load() Config {
	return Config{
		Port:                    getEnv("PORT", "8080"),
		WebhookPort:             getEnv("WEBHOOK_PORT", "8081"),
		NodeEnv:                 getEnv("NODE_ENV", "development"),
		AllowedOrigins:          splitCSV(getEnv("ALLOWED_ORIGINS", getEnv("CORS_ORIGIN", "*"))),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		SquareWebhookSignatureKey: os.Getenv("SQUARE_WEBHOOK_SIGNATURE_KEY"),
	}
}

// IsProduction reports whether NODE_ENV selects the production profile.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.NodeEnv, "production")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnvInt parses an integer environment variable, falling back to
// defaultValue on an empty or malformed value.
func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
