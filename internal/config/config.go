// Package config provides configuration loading and validation for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for optional environment variables.
const (
	DefaultPort        = 8080
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
	DefaultUploadDir   = "uploads"
)

// Config holds process-wide configuration resolved once at startup.
// It is treated as immutable for the process lifetime; nothing re-reads
// the environment per request.
type Config struct {
	Port        int
	DatabaseURL string

	// Completion API credentials. An empty key means the corresponding
	// pipeline is unavailable, which surfaces as a configuration error
	// rather than a runtime outage.
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
	GroqModel    string

	// UploadDir is where uploaded resume files are persisted.
	UploadDir string
}

// Load reads configuration from environment variables.
// DATABASE_URL is required; everything else has a default or may be empty.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         DefaultPort,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", DefaultGeminiModel),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		GroqModel:    envOr("GROQ_MODEL", DefaultGroqModel),
		UploadDir:    envOr("UPLOAD_DIR", DefaultUploadDir),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port must be in 1-65535, got %d", c.Port)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("config error: upload dir cannot be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
