package middleware

import "testing"

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(10, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("203.0.113.9") {
			t.Fatalf("request %d inside burst should be allowed", i+1)
		}
	}
	if rl.Allow("203.0.113.9") {
		t.Error("request beyond burst should be rejected")
	}
}

func TestRateLimiterPerIP(t *testing.T) {
	rl := NewRateLimiter(10, 1)

	if !rl.Allow("203.0.113.9") {
		t.Fatal("first IP should be allowed")
	}
	if rl.Allow("203.0.113.9") {
		t.Error("first IP should be exhausted")
	}
	if !rl.Allow("198.51.100.7") {
		t.Error("second IP should have its own bucket")
	}
}
