package security

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"api/config"

	"github.com/gin-gonic/gin"
)

const browserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0 Safari/537.36"

func testConfig() config.SetupSecurityConfig {
	return config.SetupSecurityConfig{
		RateLimitRequests: 5,
		RateLimitWindow:   time.Minute,
		MaxSetupAttempts:  3,
		SetupWindow:       15 * time.Minute,
		CSRFTokenLength:   32,
		PasswordMinLength: 12,
		MaxTrackedClients: 100,
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr only", "203.0.113.9:54321", nil, "203.0.113.9"},
		{"x-forwarded-for wins", "10.0.0.1:1234", map[string]string{"X-Forwarded-For": "198.51.100.7"}, "198.51.100.7"},
		{"first forwarded hop", "10.0.0.1:1234", map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.2"}, "198.51.100.7"},
		{"x-real-ip fallback", "10.0.0.1:1234", map[string]string{"X-Real-IP": "192.0.2.44"}, "192.0.2.44"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for key, value := range tt.headers {
				r.Header.Set(key, value)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPAllowed(t *testing.T) {
	if !IPAllowed(nil, "203.0.113.9") {
		t.Error("empty allow-list should permit any IP")
	}
	allowed := []string{"203.0.113.9", "198.51.100.7"}
	if !IPAllowed(allowed, "198.51.100.7") {
		t.Error("listed IP should be allowed")
	}
	if IPAllowed(allowed, "192.0.2.1") {
		t.Error("unlisted IP should be rejected")
	}
}

func TestHTTPSSatisfied(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if !HTTPSSatisfied(false, plain) {
		t.Error("plain HTTP should pass when HTTPS is not required")
	}
	if HTTPSSatisfied(true, plain) {
		t.Error("plain HTTP should fail when HTTPS is required")
	}

	proxied := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	if !HTTPSSatisfied(true, proxied) {
		t.Error("proxied HTTPS should pass")
	}

	tls := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	if !HTTPSSatisfied(true, tls) {
		t.Error("direct TLS should pass")
	}
}

func TestUserAgentAcceptable(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want bool
	}{
		{"real browser", browserAgent, true},
		{"empty", "", false},
		{"bare mozilla", "mozilla", false},
		{"curl", "curl/8.5.0 something longer", false},
		{"sqlmap", "sqlmap/1.8 (https://sqlmap.org)", false},
		{"python requests", "python-requests/2.32.0", false},
		{"too short", "Mozilla/5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserAgentAcceptable(tt.ua); got != tt.want {
				t.Errorf("UserAgentAcceptable(%q) = %v, want %v", tt.ua, got, tt.want)
			}
		})
	}
}

func TestRefererAcceptable(t *testing.T) {
	const site = "http://localhost:5173"

	tests := []struct {
		name    string
		referer string
		origin  string
		want    bool
	}{
		{"direct access", "", "", true},
		{"same-site referer", site + "/admin/setup", "", true},
		{"same-site origin", "", site, true},
		{"foreign referer", "http://evil.example/", "", false},
		{"foreign origin", "", "http://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RefererAcceptable(tt.referer, tt.origin, site); got != tt.want {
				t.Errorf("RefererAcceptable(%q, %q) = %v, want %v", tt.referer, tt.origin, got, tt.want)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name      string
		data      map[string]interface{}
		wantOK    bool
		wantField string
	}{
		{"clean input", map[string]interface{}{"username": "admin_user", "bio": "Security enthusiast"}, true, ""},
		{"sql keyword", map[string]interface{}{"username": "x; DROP TABLE users"}, false, "username"},
		{"quote", map[string]interface{}{"bio": "it's me"}, false, "bio"},
		{"script tag", map[string]interface{}{"bio": "<script>alert(1)</script>"}, false, "bio"},
		{"event handler", map[string]interface{}{"bio": "x onerror=alert(1)"}, false, "bio"},
		{"non-string values ignored", map[string]interface{}{"count": 42, "flag": true}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, field := SanitizeInput(tt.data)
			if ok != tt.wantOK || field != tt.wantField {
				t.Errorf("SanitizeInput(%v) = (%v, %q), want (%v, %q)", tt.data, ok, field, tt.wantOK, tt.wantField)
			}
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"strong password", "Tr0ub4dor&Three", true},
		{"minimum viable", "Aa1!aaaaaaaa", true},
		{"too short", "Aa1!aaaa", false},
		{"all lowercase at min length", "aaaaaaaaaaaa", false},
		{"no uppercase", "aa1!aaaaaaaa", false},
		{"no lowercase", "AA1!AAAAAAAA", false},
		{"no digit", "Aaa!aaaaaaaa", false},
		{"no special character", "Aa1aaaaaaaaa", false},
		{"common password padded", "password1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, message := ValidatePasswordStrength(12, tt.password)
			if ok != tt.want {
				t.Errorf("ValidatePasswordStrength(%q) = (%v, %q), want %v", tt.password, ok, message, tt.want)
			}
			if !ok && message == "" {
				t.Errorf("rejection for %q carries no message", tt.password)
			}
		})
	}
}

func TestCSRFTokenLifecycle(t *testing.T) {
	guard := NewSetupGuardWithStore(testConfig(), NewMemoryCounterStore(100))

	token, err := guard.IssueCSRFToken("203.0.113.9")
	if err != nil {
		t.Fatalf("IssueCSRFToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("issued token is empty")
	}

	if !guard.validCSRFToken("203.0.113.9", token) {
		t.Error("issued token should validate for its IP")
	}
	if guard.validCSRFToken("198.51.100.7", token) {
		t.Error("token should not validate for another IP")
	}
	if guard.validCSRFToken("203.0.113.9", "forged") {
		t.Error("forged token should not validate")
	}
	if guard.validCSRFToken("203.0.113.9", "") {
		t.Error("empty token should not validate")
	}

	refreshed, err := guard.IssueCSRFToken("203.0.113.9")
	if err != nil {
		t.Fatalf("IssueCSRFToken() error = %v", err)
	}
	if guard.validCSRFToken("203.0.113.9", token) {
		t.Error("stale token should not validate after refresh")
	}
	if !guard.validCSRFToken("203.0.113.9", refreshed) {
		t.Error("refreshed token should validate")
	}
}

func setupRouter(guard *SetupGuard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/setup", guard.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func setupRequest(body string, mutate func(*http.Request)) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/admin/setup", bytes.NewBufferString(body))
	r.RemoteAddr = "203.0.113.9:40000"
	r.Header.Set("User-Agent", browserAgent)
	r.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(r)
	}
	return r
}

func TestSetupGuardChain(t *testing.T) {
	t.Run("ip whitelist rejects first", func(t *testing.T) {
		cfg := testConfig()
		cfg.IPWhitelist = []string{"198.51.100.7"}
		router := setupRouter(NewSetupGuardWithStore(cfg, NewMemoryCounterStore(100)))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, setupRequest(`{}`, nil))
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("suspicious user agent rejected", func(t *testing.T) {
		router := setupRouter(NewSetupGuardWithStore(testConfig(), NewMemoryCounterStore(100)))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, setupRequest(`{}`, func(r *http.Request) {
			r.Header.Set("User-Agent", "sqlmap/1.8")
		}))
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("missing csrf token rejected", func(t *testing.T) {
		router := setupRouter(NewSetupGuardWithStore(testConfig(), NewMemoryCounterStore(100)))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, setupRequest(`{"username": "admin"}`, nil))
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("valid csrf token in header passes", func(t *testing.T) {
		guard := NewSetupGuardWithStore(testConfig(), NewMemoryCounterStore(100))
		router := setupRouter(guard)

		token, err := guard.IssueCSRFToken("203.0.113.9")
		if err != nil {
			t.Fatalf("IssueCSRFToken() error = %v", err)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, setupRequest(`{"username": "admin"}`, func(r *http.Request) {
			r.Header.Set("X-CSRF-Token", token)
		}))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("valid csrf token in body passes", func(t *testing.T) {
		guard := NewSetupGuardWithStore(testConfig(), NewMemoryCounterStore(100))
		router := setupRouter(guard)

		token, err := guard.IssueCSRFToken("203.0.113.9")
		if err != nil {
			t.Fatalf("IssueCSRFToken() error = %v", err)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, setupRequest(`{"username": "admin", "csrf_token": "`+token+`"}`, nil))
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("injection payload rejected after csrf", func(t *testing.T) {
		guard := NewSetupGuardWithStore(testConfig(), NewMemoryCounterStore(100))
		router := setupRouter(guard)

		token, err := guard.IssueCSRFToken("203.0.113.9")
		if err != nil {
			t.Fatalf("IssueCSRFToken() error = %v", err)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, setupRequest(`{"username": "a; DROP TABLE users"}`, func(r *http.Request) {
			r.Header.Set("X-CSRF-Token", token)
		}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("setup attempts capped", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimitRequests = 100
		guard := NewSetupGuardWithStore(cfg, NewMemoryCounterStore(100))
		router := setupRouter(guard)

		for i := 0; i < cfg.MaxSetupAttempts; i++ {
			token, err := guard.IssueCSRFToken("203.0.113.9")
			if err != nil {
				t.Fatalf("IssueCSRFToken() error = %v", err)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, setupRequest(`{"username": "admin"}`, func(r *http.Request) {
				r.Header.Set("X-CSRF-Token", token)
			}))
			if w.Code != http.StatusOK {
				t.Fatalf("attempt %d status = %d, want %d", i+1, w.Code, http.StatusOK)
			}
		}

		token, err := guard.IssueCSRFToken("203.0.113.9")
		if err != nil {
			t.Fatalf("IssueCSRFToken() error = %v", err)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, setupRequest(`{"username": "admin"}`, func(r *http.Request) {
			r.Header.Set("X-CSRF-Token", token)
		}))
		if w.Code != http.StatusTooManyRequests {
			t.Errorf("status after limit = %d, want %d", w.Code, http.StatusTooManyRequests)
		}
	})

	t.Run("request rate limit capped", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimitRequests = 2
		guard := NewSetupGuardWithStore(cfg, NewMemoryCounterStore(100))
		router := setupRouter(guard)

		var last int
		for i := 0; i < cfg.RateLimitRequests+1; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, setupRequest(`{}`, nil))
			last = w.Code
		}
		if last != http.StatusTooManyRequests {
			t.Errorf("status after burst = %d, want %d", last, http.StatusTooManyRequests)
		}
	})
}
