package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
// Note: The service is stateless - riffs travel with each request, nothing is persisted
type Config struct {
	// Environment
	Environment string
	Port        string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// CORS
	AllowedOrigins []string // Comma-separated CORS_ALLOWED_ORIGINS, "*" allows any

	// Riff defaults
	DefaultBPM       int    // Tempo used when a request omits bpm and speed
	DefaultRiffStyle string // melodic, arpeggiated or bass-driven
	MaxFret          int    // Upper fret bound offered by position lookups
}

func Load() *Config {
	return &Config{
		Environment:      getEnv("ENVIRONMENT", "development"),
		Port:             getEnv("PORT", "8080"),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
		AllowedOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DefaultBPM:       getEnvInt("DEFAULT_BPM", 120),
		DefaultRiffStyle: getEnv("DEFAULT_RIFF_STYLE", "melodic"),
		MaxFret:          getEnvInt("MAX_FRET", 15),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to the default when the variable is unset, malformed or not positive
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when running with ENVIRONMENT=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
