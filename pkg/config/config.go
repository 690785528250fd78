package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Backing platform configuration
	Supabase SupabaseConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for probes)
	HealthPort string

	// Allowed cross-origin caller
	ClientURL string

	// Upper bound on request bodies (avatar uploads)
	MaxUploadBytes int64
}

// SupabaseConfig holds credentials and endpoints for the backing platform
type SupabaseConfig struct {
	// Project base URL, e.g. https://xyzcompany.supabase.co
	URL string

	// Anon (publishable) key, used for password login
	AnonKey string

	// Service-role key, used for admin user creation and data access
	ServiceKey string

	// Storage bucket for avatar images
	AvatarBucket string

	// Timeout applied to every platform round trip
	Timeout time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Supabase:      loadSupabaseConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("TASKDECK_HOST", "0.0.0.0"),
		Port:            getEnv("TASKDECK_PORT", "8080"),
		ReadTimeout:     getEnvDuration("TASKDECK_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("TASKDECK_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("TASKDECK_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("TASKDECK_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("TASKDECK_HEALTH_PORT", "9090"),
		ClientURL:       getEnv("TASKDECK_CLIENT_URL", ""),
		MaxUploadBytes:  getEnvInt64("TASKDECK_MAX_UPLOAD_BYTES", 10*1024*1024),
	}
}

// loadSupabaseConfig loads backing platform configuration from environment
func loadSupabaseConfig() SupabaseConfig {
	return SupabaseConfig{
		URL:          getEnv("TASKDECK_SUPABASE_URL", ""),
		AnonKey:      getEnv("TASKDECK_SUPABASE_ANON_KEY", ""),
		ServiceKey:   getEnv("TASKDECK_SUPABASE_SERVICE_KEY", ""),
		AvatarBucket: getEnv("TASKDECK_AVATAR_BUCKET", "avatars"),
		Timeout:      getEnvDuration("TASKDECK_SUPABASE_TIMEOUT", 10*time.Second),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       parseLogLevel(getEnv("TASKDECK_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("TASKDECK_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}
	if c.Server.ClientURL == "" {
		return fmt.Errorf("client URL is required (set TASKDECK_CLIENT_URL)")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}

	if c.Supabase.URL == "" {
		return fmt.Errorf("supabase URL is required (set TASKDECK_SUPABASE_URL)")
	}
	if c.Supabase.AnonKey == "" {
		return fmt.Errorf("supabase anon key is required (set TASKDECK_SUPABASE_ANON_KEY)")
	}
	if c.Supabase.ServiceKey == "" {
		return fmt.Errorf("supabase service key is required (set TASKDECK_SUPABASE_SERVICE_KEY)")
	}
	if c.Supabase.AvatarBucket == "" {
		return fmt.Errorf("avatar bucket is required")
	}
	if c.Supabase.Timeout <= 0 {
		return fmt.Errorf("supabase timeout must be positive")
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
