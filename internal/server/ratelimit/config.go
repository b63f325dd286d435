package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the rate limit for one endpoint. A path ending in
// "/" prefix-matches; Limit <= 0 means unlimited.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds the limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Endpoints       []EndpointConfig
}

func defaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		Endpoints:       DefaultEndpointConfigs(),
	}
}

// LoadConfig reads limiter settings from environment variables.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Endpoints:       DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs tiers the API: completion-backed endpoints get
// the strictest limits, plain writes a moderate one, reads the default.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: endpoints that call the completion API.
		{Path: "/profiles/me/resume/parse", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/profiles/me/resume/generate", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/profiles/me/cover-letter/generate", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/drafts", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},

		// Tier 2: plain writes.
		{Path: "/profiles/me", Method: "PATCH", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/profiles/me/onboarding", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/profiles/me/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/profiles/me/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/profiles/me/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/drafts/", Method: "PATCH", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/drafts/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// matchEndpoint resolves the config for a path and method. Exact matches
// win over prefix matches; the health check is always unlimited.
func matchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
