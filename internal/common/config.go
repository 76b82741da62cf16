package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Remote RemoteConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string
}

// RemoteConfig holds remote extraction service configuration
type RemoteConfig struct {
	// ExplicitURL overrides every other endpoint source when set.
	ExplicitURL string
	// SettingsPath points at the persisted user settings file.
	SettingsPath string
	// BundledURL is the endpoint shipped with the application build.
	BundledURL string
	// AllowPublicFallback swaps a loopback endpoint for the documented
	// production URL (physical-device testing).
	AllowPublicFallback bool
	Timeout             time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		Remote: RemoteConfig{
			ExplicitURL:         getEnv("EXTRACT_API_URL", ""),
			SettingsPath:        getEnv("EXTRACT_SETTINGS_PATH", ""),
			BundledURL:          getEnv("EXTRACT_BUNDLED_URL", ""),
			AllowPublicFallback: getEnvAsBool("EXTRACT_ALLOW_PUBLIC_FALLBACK", false),
			Timeout:             getEnvAsDuration("EXTRACT_REMOTE_TIMEOUT", 30*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
