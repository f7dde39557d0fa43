package security

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"

	"api/config"
	"api/metrics"

	"github.com/gin-gonic/gin"
)

// Guard chain rejection stages, used as metric labels and log fields
const (
	stageIPWhitelist   = "ip_not_whitelisted"
	stageHTTPS         = "https_required"
	stageUserAgent     = "suspicious_user_agent"
	stageReferer       = "invalid_referer"
	stageRateLimit     = "rate_limit_exceeded"
	stageSetupAttempts = "setup_attempts_exceeded"
	stageCSRF          = "invalid_csrf_token"
	stageInput         = "invalid_input"
)

// Counter key suffixes: general requests and setup attempts are tracked in
// separate windows
const (
	rateKeySuffix  = ":requests"
	setupKeySuffix = ":setup"
)

var suspiciousAgents = []string{
	"gobuster", "dirb", "dirbuster", "wfuzz", "burp", "nikto", "nmap",
	"sqlmap", "w3af", "zap", "scanner", "crawler", "bot", "spider",
	"python-requests", "curl", "wget", "postman", "insomnia", "httpie",
	"automated", "script", "test", "hack", "exploit", "payload",
}

var sqlPatterns = []string{
	"'", "\"", ";", "--", "/*", "*/", "xp_", "sp_",
	"union", "select", "insert", "update", "delete",
	"drop", "create", "alter", "exec", "execute",
}

var xssPatterns = []string{
	"<script", "</script>", "javascript:", "onload=",
	"onerror=", "onclick=", "onmouseover=", "onfocus=",
}

const specialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

var weakPasswords = []string{
	"password", "123456", "admin", "root", "user", "test",
	"password123", "admin123", "root123", "user123",
}

// SetupGuard wraps the one-time admin bootstrap endpoint in a sequential
// security chain. Each stage short-circuits with its own rejection; the
// IP allow-list runs first.
type SetupGuard struct {
	cfg   config.SetupSecurityConfig
	store CounterStore

	csrfMu     sync.Mutex
	csrfTokens map[string]csrfEntry
}

type csrfEntry struct {
	token     string
	expiresAt time.Time
}

func NewSetupGuard(cfg config.SetupSecurityConfig) *SetupGuard {
	var store CounterStore
	if cfg.CounterRedisAddr != "" {
		store = NewRedisCounterStore(cfg.CounterRedisAddr)
	} else {
		store = NewMemoryCounterStore(cfg.MaxTrackedClients)
	}
	return NewSetupGuardWithStore(cfg, store)
}

func NewSetupGuardWithStore(cfg config.SetupSecurityConfig, store CounterStore) *SetupGuard {
	return &SetupGuard{
		cfg:        cfg,
		store:      store,
		csrfTokens: make(map[string]csrfEntry),
	}
}

// ClientIP resolves the real source address, honouring proxy headers
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}

// IPAllowed checks allow-list membership; an empty list means no restriction
func IPAllowed(allowed []string, ip string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if candidate == ip {
			return true
		}
	}
	return false
}

// HTTPSSatisfied passes when HTTPS is not required, the connection is TLS,
// or a proxy vouches for it
func HTTPSSatisfied(requireHTTPS bool, r *http.Request) bool {
	if !requireHTTPS {
		return true
	}
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

// UserAgentAcceptable rejects known tool signatures, missing or generic
// agents, and implausible lengths
func UserAgentAcceptable(userAgent string) bool {
	ua := strings.ToLower(userAgent)

	for _, pattern := range suspiciousAgents {
		if strings.Contains(ua, pattern) {
			return false
		}
	}

	if ua == "" || ua == "mozilla" || ua == "browser" {
		return false
	}

	if len(ua) < 10 || len(ua) > 500 {
		return false
	}

	return true
}

// RefererAcceptable allows direct access (no referer, no origin) or
// same-site referers
func RefererAcceptable(referer, origin, expectedOrigin string) bool {
	if referer == "" && origin == "" {
		return true
	}
	if strings.HasPrefix(referer, expectedOrigin) || origin == expectedOrigin {
		return true
	}
	return false
}

// SanitizeInput scans string fields for SQL- and script-injection
// substrings, returning the offending field on failure
func SanitizeInput(data map[string]interface{}) (bool, string) {
	for key, value := range data {
		str, ok := value.(string)
		if !ok {
			continue
		}
		lower := strings.ToLower(str)
		for _, pattern := range sqlPatterns {
			if strings.Contains(lower, pattern) {
				return false, key
			}
		}
		for _, pattern := range xssPatterns {
			if strings.Contains(lower, pattern) {
				return false, key
			}
		}
	}
	return true, ""
}

// ValidatePasswordStrength enforces the admin password policy: minimum
// length, all four character classes, and a weak-password blocklist. The
// message names the first unmet requirement.
func ValidatePasswordStrength(minLength int, password string) (bool, string) {
	if len(password) < minLength {
		return false, fmt.Sprintf("Password must be at least %d characters long", minLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		case strings.ContainsRune(specialChars, c):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return false, "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return false, "Password must contain at least one lowercase letter"
	}
	if !hasDigit {
		return false, "Password must contain at least one number"
	}
	if !hasSpecial {
		return false, "Password must contain at least one special character"
	}

	lower := strings.ToLower(password)
	for _, weak := range weakPasswords {
		if lower == weak {
			return false, "Password is too common, please choose a stronger password"
		}
	}

	return true, "Password is strong"
}

// IssueCSRFToken creates (or refreshes) the CSRF token bound to an IP
func (g *SetupGuard) IssueCSRFToken(ip string) (string, error) {
	b := make([]byte, g.cfg.CSRFTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	g.csrfMu.Lock()
	defer g.csrfMu.Unlock()

	// Bound the token map alongside the counter store
	if len(g.csrfTokens) >= g.cfg.MaxTrackedClients {
		now := time.Now()
		for key, entry := range g.csrfTokens {
			if entry.expiresAt.Before(now) {
				delete(g.csrfTokens, key)
			}
		}
	}

	g.csrfTokens[ip] = csrfEntry{token: token, expiresAt: time.Now().Add(30 * time.Minute)}
	return token, nil
}

func (g *SetupGuard) validCSRFToken(ip, token string) bool {
	if token == "" {
		return false
	}

	g.csrfMu.Lock()
	entry, exists := g.csrfTokens[ip]
	g.csrfMu.Unlock()

	if !exists || time.Now().After(entry.expiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(entry.token)) == 1
}

func (g *SetupGuard) logEvent(stage, ip string, r *http.Request) {
	metrics.SetupGuardRejections.WithLabelValues(stage).Inc()
	log.Printf("SECURITY_EVENT stage=%s ip=%s user_agent=%q", stage, ip, r.UserAgent())
}

// Middleware is the full guard chain for POST /admin/setup
func (g *SetupGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := c.Request
		ip := ClientIP(r)

		// 1. IP allow-list; always first
		if !IPAllowed(g.cfg.IPWhitelist, ip) {
			g.logEvent(stageIPWhitelist, ip, r)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		// 2. HTTPS requirement
		if !HTTPSSatisfied(g.cfg.RequireHTTPS, r) {
			g.logEvent(stageHTTPS, ip, r)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "HTTPS required"})
			return
		}

		// 3. User agent heuristics
		if !UserAgentAcceptable(r.UserAgent()) {
			g.logEvent(stageUserAgent, ip, r)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		// 4. Referer/origin same-site check
		expectedOrigin := config.ClientUrl
		if !RefererAcceptable(r.Referer(), r.Header.Get("Origin"), expectedOrigin) {
			g.logEvent(stageReferer, ip, r)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		// 5. Request rate limiting (short window)
		if !g.allowRequest(ip) {
			g.logEvent(stageRateLimit, ip, r)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		// 6. Setup attempt limiting (long window, lower count)
		count, err := g.store.Count(ip+setupKeySuffix, g.cfg.SetupWindow)
		if err == nil && count >= g.cfg.MaxSetupAttempts {
			g.logEvent(stageSetupAttempts, ip, r)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Maximum setup attempts exceeded"})
			return
		}

		if r.Method == http.MethodPost {
			body := readBody(c)

			// 7. CSRF token match on mutating requests
			csrfToken := r.Header.Get("X-CSRF-Token")
			if csrfToken == "" {
				csrfToken = stringField(body, "csrf_token")
			}
			if !g.validCSRFToken(ip, csrfToken) {
				g.logEvent(stageCSRF, ip, r)
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid CSRF token"})
				return
			}

			// 8. Input sanitization scan
			if ok, field := SanitizeInput(body); !ok {
				g.logEvent(stageInput, ip, r)
				log.Printf("SECURITY_EVENT stage=%s ip=%s field=%s", stageInput, ip, field)
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
				return
			}

			if err := g.store.Record(ip+setupKeySuffix, g.cfg.SetupWindow); err != nil {
				log.Printf("failed to record setup attempt for %s: %v", ip, err)
			}
		}

		c.Next()
	}
}

// CheckMiddleware is the lighter chain for GET /admin/setup/check: user
// agent heuristics and rate limiting only
func (g *SetupGuard) CheckMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := c.Request
		ip := ClientIP(r)

		if !UserAgentAcceptable(r.UserAgent()) {
			g.logEvent(stageUserAgent, ip, r)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		if !g.allowRequest(ip) {
			g.logEvent(stageRateLimit, ip, r)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		c.Next()
	}
}

// allowRequest counts and records one request inside the short window
func (g *SetupGuard) allowRequest(ip string) bool {
	key := ip + rateKeySuffix
	count, err := g.store.Count(key, g.cfg.RateLimitWindow)
	if err != nil {
		// A broken shared store fails open; the attempt limiter still applies
		log.Printf("counter store failure for %s: %v", ip, err)
		return true
	}
	if count >= g.cfg.RateLimitRequests {
		return false
	}
	if err := g.store.Record(key, g.cfg.RateLimitWindow); err != nil {
		log.Printf("counter store failure for %s: %v", ip, err)
	}
	return true
}

// readBody decodes the JSON body and restores it so the handler can bind
// it again
func readBody(c *gin.Context) map[string]interface{} {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return body
}

func stringField(body map[string]interface{}, key string) string {
	if body == nil {
		return ""
	}
	if value, ok := body[key].(string); ok {
		return value
	}
	return ""
}
