package ratelimit

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// envSettings is the RATE_LIMIT_* environment block
type envSettings struct {
	Enabled         bool          `envconfig:"ENABLED" default:"true"`
	DefaultLimit    int           `envconfig:"DEFAULT_LIMIT" default:"600"`
	DefaultWindow   time.Duration `envconfig:"DEFAULT_WINDOW" default:"1m"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"5m"`
	Whitelist       []string      `envconfig:"WHITELIST"`
	Blacklist       []string      `envconfig:"BLACKLIST"`
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
// Malformed values fall back to the defaults.
func LoadConfig() *Config {
	var env envSettings
	if err := envconfig.Process("RATE_LIMIT", &env); err != nil {
		env = envSettings{Enabled: true, DefaultLimit: 600, DefaultWindow: time.Minute, CleanupInterval: 5 * time.Minute}
	}
	if !env.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.DefaultLimit,
		DefaultWindow:   env.DefaultWindow,
		CleanupInterval: env.CleanupInterval,
		Whitelist:       toSet(env.Whitelist),
		Blacklist:       toSet(env.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Model-backed operations
		{Path: "/resumes", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/resumes/stream", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/interviews/questions", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/interviews/evaluate", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/coding/analyze", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},
		{Path: "/assistant/chat", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},

		// Credential endpoints
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/register", Method: "POST", Limit: 5, Window: time.Minute, Burst: 2},
		{Path: "/auth/password", Method: "PUT", Limit: 5, Window: time.Minute, Burst: 2},

		// Writes
		{Path: "/interviews", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/coding/submit", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/admin/problems/seed", Method: "POST", Limit: 5, Window: time.Minute, Burst: 1},
		{Path: "/resumes/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/proctoring/events", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},

		// Reads use the default limit; /health is unlimited
	}
}

func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
