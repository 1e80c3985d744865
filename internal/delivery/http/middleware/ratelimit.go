package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/pkg/utils"
)

// RateLimiter - per client IP token buckets
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter allows perMinute requests per minute per IP, all of them in a burst.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	e, ok := rl.limiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = e
	}
	e.lastAccess = time.Now()
	limiter := e.limiter
	rl.mu.Unlock()

	return limiter.Allow()
}

// Sweep forgets IPs idle for longer than idle and returns how many were dropped.
func (rl *RateLimiter) Sweep(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	threshold := time.Now().Add(-idle)
	n := 0
	for ip, e := range rl.limiters {
		if e.lastAccess.Before(threshold) {
			delete(rl.limiters, ip)
			n++
		}
	}
	return n
}

// Handler rejects requests over the limit with RATE_LIMITED.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.Allow(c.IP()) {
			c.Set(fiber.HeaderRetryAfter, "60")
			return utils.SendError(c, errors.ErrRateLimited)
		}
		return c.Next()
	}
}
