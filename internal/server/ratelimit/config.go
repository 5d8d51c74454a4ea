package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the rate limit tier for one endpoint. A Limit of zero
// means unthrottled.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // bucket capacity, Limit when zero
}

// MatchEndpoint returns the tier for a path and method, or nil when the
// request falls under the global default. Paths match exactly; none of the
// throttled routes carry path parameters.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health probe is polled by uptime checks and is never throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}
	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	return nil
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	defaultLimit := getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000)
	defaultWindow := getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute)
	cleanupInterval := getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute)

	whitelist := parseIPList(getEnvString("RATE_LIMIT_WHITELIST", ""))
	blacklist := parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", ""))

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: cleanupInterval,
		Whitelist:       whitelist,
		Blacklist:       blacklist,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: Expensive operations (strictest limits)
		{Path: "/api/pdf", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/api/assessment", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},

		// Tier 2: Write operations (moderate limits)
		{Path: "/api/waitlist", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/contact", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/roadmap", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/admin/templates", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},

		// Tier 3: Credential guessing (slow refill)
		{Path: "/api/admin/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},

		// Reads fall under the global default; /health is exempted in
		// MatchEndpoint.
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	ips := strings.Split(list, ",")
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}

