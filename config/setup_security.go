package config

import (
	"os"
	"strings"
	"time"
)

// Admin setup security configuration
type SetupSecurityConfig struct {
	IPWhitelist        []string      // Source IPs allowed to reach the setup endpoint (empty = open)
	RequireHTTPS       bool          // Reject plain HTTP requests
	RateLimitRequests  int           // Requests per IP inside RateLimitWindow
	RateLimitWindow    time.Duration // Short sliding window for general requests
	MaxSetupAttempts   int           // Setup POSTs per IP inside SetupWindow
	SetupWindow        time.Duration // Longer sliding window for setup attempts
	CSRFTokenLength    int           // Bytes of entropy in issued CSRF tokens
	PasswordMinLength  int           // Minimum admin password length
	CounterRedisAddr   string        // Optional Redis address for shared counters
	MaxTrackedClients  int           // Cap on distinct IPs kept by the in-memory counter store
}

var DefaultSetupSecurityConfig = SetupSecurityConfig{
	IPWhitelist:       splitIPs(getEnv("ADMIN_SETUP_IP_WHITELIST", "")),
	RequireHTTPS:      getEnv("REQUIRE_HTTPS", "false") == "true",
	RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 50),
	RateLimitWindow:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 1)) * time.Minute,
	MaxSetupAttempts:  getEnvInt("MAX_SETUP_ATTEMPTS", 3),
	SetupWindow:       time.Duration(getEnvInt("SETUP_WINDOW_MINUTES", 15)) * time.Minute,
	CSRFTokenLength:   getEnvInt("CSRF_TOKEN_LENGTH", 32),
	PasswordMinLength: getEnvInt("PASSWORD_MIN_LENGTH", 12),
	CounterRedisAddr:  os.Getenv("SETUP_COUNTER_REDIS_ADDR"),
	MaxTrackedClients: getEnvInt("SETUP_MAX_TRACKED_CLIENTS", 10000),
}

func splitIPs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ips []string
	for _, ip := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(ip); trimmed != "" {
			ips = append(ips, trimmed)
		}
	}
	return ips
}
