package config

import (
	"net/url"
	"os"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Ontology OntologyConfig
	Logging  LoggingConfig
	Limits   WindowLimits
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// OntologyConfig holds the remote ontology source configuration
type OntologyConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Ontology: OntologyConfig{
			BaseURL: getEnv("ONTOLOGY_BASE_URL", "https://ontology.jax.org/api/hp"),
			Timeout: getDurationEnv("ONTOLOGY_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Limits: DefaultWindowLimits(),
	}

	// An optional YAML file can override the pagination window table.
	if path := getEnv("LIMITS_CONFIG_PATH", ""); path != "" {
		if limits, err := LoadWindowLimits(path); err == nil {
			cfg.Limits = *limits
		}
	}

	return cfg
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets duration from environment variable with default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Ontology.BaseURL == "" {
		return &ConfigError{Field: "ONTOLOGY_BASE_URL", Message: "ontology base URL is required"}
	}
	if _, err := url.ParseRequestURI(c.Ontology.BaseURL); err != nil {
		return &ConfigError{Field: "ONTOLOGY_BASE_URL", Message: "ontology base URL is not a valid URL"}
	}
	if c.Ontology.Timeout <= 0 {
		return &ConfigError{Field: "ONTOLOGY_TIMEOUT", Message: "ontology timeout must be positive"}
	}
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	return nil
}

// ConfigError represents configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
