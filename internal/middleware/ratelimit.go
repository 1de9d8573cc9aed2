package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"campus-events/internal/models"

	"github.com/gin-gonic/gin"
)

// LoginRateLimiter limits credential attempts per client IP over a sliding window
type LoginRateLimiter struct {
	attempts    map[string][]time.Time
	mutex       sync.Mutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewLoginRateLimiter creates a new login rate limiter
func NewLoginRateLimiter(maxAttempts int, window time.Duration) *LoginRateLimiter {
	return &LoginRateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// IsAllowed checks if another attempt from ip is allowed
func (rl *LoginRateLimiter) IsAllowed(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	return len(rl.prune(ip)) < rl.maxAttempts
}

// RecordAttempt records an attempt from ip
func (rl *LoginRateLimiter) RecordAttempt(ip string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.attempts[ip] = append(rl.prune(ip), rl.now())
}

// TimeUntilAllowed returns how long ip has to wait for its next attempt
func (rl *LoginRateLimiter) TimeUntilAllowed(ip string) time.Duration {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	attempts := rl.prune(ip)
	if len(attempts) < rl.maxAttempts {
		return 0
	}
	return attempts[len(attempts)-rl.maxAttempts].Add(rl.window).Sub(rl.now())
}

// Run drops expired entries every interval until ctx is done
func (rl *LoginRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mutex.Lock()
			for ip := range rl.attempts {
				rl.prune(ip)
			}
			rl.mutex.Unlock()
		}
	}
}

// prune must be called with the mutex held
func (rl *LoginRateLimiter) prune(ip string) []time.Time {
	cutoff := rl.now().Add(-rl.window)
	attempts := rl.attempts[ip]

	valid := attempts[:0]
	for _, attempt := range attempts {
		if attempt.After(cutoff) {
			valid = append(valid, attempt)
		}
	}

	if len(valid) == 0 {
		delete(rl.attempts, ip)
		return nil
	}
	rl.attempts[ip] = valid
	return valid
}

// LoginRateLimit rejects credential attempts over the limit with 429 and a
// Retry-After header
func LoginRateLimit(rl *LoginRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !rl.IsAllowed(ip) {
			wait := rl.TimeUntilAllowed(ip)
			c.Header("Retry-After", strconv.Itoa(int(wait.Round(time.Second).Seconds())))
			RespondError(c, models.ErrTooManyRequests)
			c.Abort()
			return
		}

		rl.RecordAttempt(ip)
		c.Next()
	}
}
