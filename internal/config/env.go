package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment represents the application environment
type Environment string

const (
	// Development environment - localhost, debug enabled
	Development Environment = "development"
	// Production environment - real domain, production settings
	Production Environment = "production"
)

// EnvConfig holds environment-specific configuration
type EnvConfig struct {
	// Environment name (development, production)
	Env Environment

	// Base URL the service is reachable at, used in startup output
	BaseURL       string
	AllowedOrigin string

	// Feature flags
	Debug bool

	LogLevel string

	// Overrides settings_file from config.json when set
	SettingsFile string
}

// LoadEnv loads environment configuration from environment variables
func LoadEnv() *EnvConfig {
	env := getEnvOrDefault("APP_ENV", "development")

	cfg := &EnvConfig{
		Env:          Environment(strings.ToLower(env)),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		SettingsFile: os.Getenv("SETTINGS_FILE"),
	}

	switch cfg.Env {
	case Production:
		cfg.BaseURL = getEnvOrDefault("BASE_URL", "https://palette.yourdomain.com")
		// Production pages are served from the site itself, not a wildcard
		cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", cfg.BaseURL)
		cfg.Debug = parseBoolOrDefault(os.Getenv("DEBUG"), false)
	default: // Development
		cfg.Env = Development // Normalize unknown envs to development
		cfg.BaseURL = getEnvOrDefault("BASE_URL", "http://localhost:8080")
		cfg.AllowedOrigin = getEnvOrDefault("ALLOWED_ORIGIN", "*")
		cfg.Debug = parseBoolOrDefault(os.Getenv("DEBUG"), true)
		if cfg.LogLevel == "info" {
			cfg.LogLevel = "debug" // Dev default
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode
func (e *EnvConfig) IsDevelopment() bool {
	return e.Env == Development
}

// IsProduction returns true if running in production mode
func (e *EnvConfig) IsProduction() bool {
	return e.Env == Production
}

// String returns the environment name
func (e Environment) String() string {
	return string(e)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolOrDefault(s string, defaultValue bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return b
}
