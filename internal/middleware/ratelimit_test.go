package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
)

func newTestLimiter(t *testing.T, cfg RateLimitConfig) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(cfg)
	t.Cleanup(rl.Close)
	return rl
}

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := newTestLimiter(t, RateLimitConfig{Max: 5, Window: time.Minute, KeyFn: KeyByIP})

	for i := 0; i < 5; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	rl := newTestLimiter(t, RateLimitConfig{Max: 3, Window: time.Minute, KeyFn: KeyByIP})

	for i := 0; i < 3; i++ {
		rl.Allow("test-ip")
	}

	if rl.Allow("test-ip") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := newTestLimiter(t, RateLimitConfig{Max: 2, Window: time.Minute, KeyFn: KeyByIP})

	rl.Allow("ip-a")
	rl.Allow("ip-a")

	if rl.Allow("ip-a") {
		t.Fatal("ip-a should be blocked")
	}
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b should be allowed (independent key)")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := newTestLimiter(t, RateLimitConfig{Max: 2, Window: 50 * time.Millisecond, KeyFn: KeyByIP})

	rl.Allow("test")
	rl.Allow("test")

	if rl.Allow("test") {
		t.Fatal("should be blocked within window")
	}

	time.Sleep(60 * time.Millisecond)

	if !rl.Allow("test") {
		t.Fatal("should be allowed after window reset")
	}
}

func TestRateLimiter_Presets(t *testing.T) {
	tests := []struct {
		name string
		rl   *RateLimiter
		max  int
	}{
		{"read", NewReadRateLimiter(), 100},
		{"stats", NewStatsRateLimiter(), 30},
		{"backup", NewBackupRateLimiter(), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.rl.Close()
			for i := 0; i < tt.max; i++ {
				if !tt.rl.Allow("ip:127.0.0.1") {
					t.Fatalf("request %d should be allowed (max %d)", i+1, tt.max)
				}
			}
			if tt.rl.Allow("ip:127.0.0.1") {
				t.Fatalf("request %d should be blocked", tt.max+1)
			}
		})
	}
}

func TestRateLimiter_HandlerReturnsEnvelope(t *testing.T) {
	rl := newTestLimiter(t, RateLimitConfig{Max: 1, Window: time.Minute})
	app := fiber.New()
	app.Get("/stats", rl.Handler(), func(c fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/stats", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first request status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", got)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/stats", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != CodeRateLimited {
		t.Errorf("code = %q, want %q", body.Error.Code, CodeRateLimited)
	}
}
