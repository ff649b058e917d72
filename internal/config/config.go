package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider names accepted by PLACES_PROVIDER
const (
	ProviderGeoapify = "geoapify"
	ProviderGoogle   = "google"
	ProviderOverpass = "overpass"
)

// MaxResultLimit is the hard cap on places returned by one search
const MaxResultLimit = 20

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Places     PlacesConfig
}

// PostgreSQLConfig holds the optional search log database configuration
type PostgreSQLConfig struct {
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
	Enabled            bool
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedHeaders string
}

// PlacesConfig holds the upstream places provider configuration
type PlacesConfig struct {
	Provider        string
	GeoapifyAPIKey  string
	GeoapifyBaseURL string
	GoogleAPIKey    string
	GoogleEndpoint  string
	OverpassURL     string
	RadiusMeters    int
	ResultLimit     int
	Timeout         int // seconds
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	dsn := getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", "")))

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                dsn,
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
			Enabled:            dsn != "",
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "authorization,x-client-info,apikey,content-type"),
		},
		Places: PlacesConfig{
			Provider:        strings.ToLower(getEnv("PLACES_PROVIDER", ProviderGeoapify)),
			GeoapifyAPIKey:  getEnv("GEOAPIFY_API_KEY", ""),
			GeoapifyBaseURL: getEnv("GEOAPIFY_BASE_URL", "https://api.geoapify.com/v2/places"),
			GoogleAPIKey:    getEnv("GOOGLE_PLACES_API_KEY", ""),
			GoogleEndpoint:  getEnv("GOOGLE_PLACES_ENDPOINT", "https://places.googleapis.com/"),
			OverpassURL:     getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
			RadiusMeters:    getEnvAsInt("PLACES_RADIUS_METERS", 5000),
			ResultLimit:     clampLimit(getEnvAsInt("PLACES_RESULT_LIMIT", MaxResultLimit)),
			Timeout:         getEnvAsInt("PLACES_TIMEOUT", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the server unusable
func (c *Config) Validate() error {
	switch c.Places.Provider {
	case ProviderGeoapify, ProviderGoogle, ProviderOverpass:
	default:
		return fmt.Errorf("unknown PLACES_PROVIDER %q (want geoapify, google or overpass)", c.Places.Provider)
	}
	if c.Places.RadiusMeters <= 0 {
		return fmt.Errorf("PLACES_RADIUS_METERS must be positive, got %d", c.Places.RadiusMeters)
	}
	if c.Places.Timeout <= 0 {
		return fmt.Errorf("PLACES_TIMEOUT must be positive, got %d", c.Places.Timeout)
	}
	return nil
}

// ProviderTimeout returns the upper bound for one provider round trip
func (c *PlacesConfig) ProviderTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// CORSHeaders splits the configured allow-headers list
func (c *ServerConfig) CORSHeaders() []string {
	return splitList(c.AllowedHeaders)
}

// CORSOrigins splits the configured origins; nil means every origin is allowed
func (c *ServerConfig) CORSOrigins() []string {
	origins := splitList(c.AllowedOrigins)
	for _, o := range origins {
		if o == "*" {
			return nil
		}
	}
	return origins
}

// Helper functions

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxResultLimit {
		return MaxResultLimit
	}
	return limit
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}
