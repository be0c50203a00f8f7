package middleware

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RateLimitConfig defines the limit for a route or group.
type RateLimitConfig struct {
	Max    int                      // requests allowed per window
	Window time.Duration            // window length
	KeyFn  func(c fiber.Ctx) string // key to limit on
}

type entry struct {
	count     int
	windowEnd time.Time
}

// RateLimiter is an in-memory fixed-window rate limiter.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	config  RateLimitConfig

	closeOnce sync.Once
	done      chan struct{}
}

// NewRateLimiter creates a rate limiter and starts its expiry sweep.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFn == nil {
		cfg.KeyFn = KeyByIP
	}
	rl := &RateLimiter{
		entries: make(map[string]*entry),
		config:  cfg,
		done:    make(chan struct{}),
	}
	go rl.cleanup(5 * time.Minute)
	return rl
}

// Handler returns a Fiber middleware enforcing the limit.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		allowed, remaining, resetAt := rl.take(rl.config.KeyFn(c))
		setRateLimitHeaders(c, rl.config.Max, remaining, resetAt)

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds()) + 1
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return ErrorResponse(c, fiber.StatusTooManyRequests, CodeRateLimited,
				fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter))
		}
		return c.Next()
	}
}

// Allow reports whether one more request under key fits the limit.
func (rl *RateLimiter) Allow(key string) bool {
	allowed, _, _ := rl.take(key)
	return allowed
}

func (rl *RateLimiter) take(key string) (allowed bool, remaining int, resetAt time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	e, exists := rl.entries[key]
	if !exists || now.After(e.windowEnd) {
		e = &entry{windowEnd: now.Add(rl.config.Window)}
		rl.entries[key] = e
	}
	e.count++
	remaining = rl.config.Max - e.count
	return remaining >= 0, max(remaining, 0), e.windowEnd
}

// Close stops the expiry sweep.
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.done) })
}

func setRateLimitHeaders(c fiber.Ctx, limit, remaining int, resetAt time.Time) {
	c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
}

func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, e := range rl.entries {
				if now.After(e.windowEnd) {
					delete(rl.entries, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.done:
			return
		}
	}
}

// KeyByIP returns the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + c.IP()
}

// --- Preset limiters ---

// NewReadRateLimiter: 100 req/min per IP, for listing and lookup routes.
func NewReadRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Max:    100,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})
}

// NewStatsRateLimiter: 30 req/min per IP
func NewStatsRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Max:    30,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})
}

// NewBackupRateLimiter: 10 req/hour per IP
func NewBackupRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Max:    10,
		Window: time.Hour,
		KeyFn:  KeyByIP,
	})
}
