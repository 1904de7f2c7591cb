package utils

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Decision is the outcome of a limiter check. RetryAfter is in seconds and
// only meaningful when Allowed is false.
type Decision struct {
	Allowed    bool
	RetryAfter int
}

type window struct {
	count int
	start time.Time
}

// FixedWindowLimiter counts requests per key in fixed windows. State is
// per-process and lost on restart, which is acceptable for the public
// booking surface it protects.
type FixedWindowLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	keys   map[string]*window
}

func NewFixedWindowLimiter(limit int, windowSize time.Duration) *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		limit:  limit,
		window: windowSize,
		keys:   make(map[string]*window),
	}
	go l.cleanup()
	return l
}

// Check reports whether another request for key fits in the current window.
func (l *FixedWindowLimiter) Check(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.keys[key]
	if !ok || now.Sub(w.start) >= l.window {
		return Decision{Allowed: true}
	}
	if w.count < l.limit {
		return Decision{Allowed: true}
	}
	retry := int(l.window.Seconds() - now.Sub(w.start).Seconds())
	if retry < 1 {
		retry = 1
	}
	return Decision{Allowed: false, RetryAfter: retry}
}

// Allow checks and records one request for key under a single lock, so
// concurrent requests at the budget boundary cannot both slip through a
// Check/Record gap.
func (l *FixedWindowLimiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.keys[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.keys[key] = &window{count: 1, start: now}
		return Decision{Allowed: true}
	}
	if w.count < l.limit {
		w.count++
		return Decision{Allowed: true}
	}
	retry := int(l.window.Seconds() - now.Sub(w.start).Seconds())
	if retry < 1 {
		retry = 1
	}
	return Decision{Allowed: false, RetryAfter: retry}
}

// Record counts a request against key, rolling the window over if expired.
func (l *FixedWindowLimiter) Record(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.keys[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.keys[key] = &window{count: 1, start: now}
		return
	}
	w.count++
}

// Clear forgets all state for key.
func (l *FixedWindowLimiter) Clear(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.keys, key)
}

func (l *FixedWindowLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-2 * l.window)
		for key, w := range l.keys {
			if w.start.Before(cutoff) {
				delete(l.keys, key)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimitMiddleware rejects requests over the per-address quota with 429
// and a retry hint. The quota resets on window rollover.
func RateLimitMiddleware(l *FixedWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if decision := l.Allow(c.ClientIP()); !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests, please try again later",
				"retryAfter": decision.RetryAfter,
			})
			return
		}
		c.Next()
	}
}

type attempt struct {
	count     int
	lockedAt  time.Time
	updatedAt time.Time
}

// LoginLockout tracks failed PIN attempts per (address, name) pair and
// locks the pair out for a fixed period once the attempt budget is spent.
type LoginLockout struct {
	mu          sync.Mutex
	maxAttempts int
	lockout     time.Duration
	attempts    map[string]*attempt
}

func NewLoginLockout(maxAttempts int, lockout time.Duration) *LoginLockout {
	l := &LoginLockout{
		maxAttempts: maxAttempts,
		lockout:     lockout,
		attempts:    make(map[string]*attempt),
	}
	go l.cleanup()
	return l
}

// Check reports whether key may attempt a login right now.
func (l *LoginLockout) Check(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[key]
	if !ok || a.count < l.maxAttempts {
		return Decision{Allowed: true}
	}

	remaining := l.lockout - time.Since(a.lockedAt)
	if remaining <= 0 {
		delete(l.attempts, key)
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, RetryAfter: int(remaining.Seconds()) + 1}
}

// Record counts a failed attempt for key.
func (l *LoginLockout) Record(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[key]
	if !ok {
		a = &attempt{}
		l.attempts[key] = a
	}
	a.count++
	a.updatedAt = time.Now()
	if a.count >= l.maxAttempts && a.lockedAt.IsZero() {
		a.lockedAt = time.Now()
	}
}

// Clear forgets all attempts for key, called on successful login.
func (l *LoginLockout) Clear(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

func (l *LoginLockout) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-2 * l.lockout)
		for key, a := range l.attempts {
			if a.updatedAt.Before(cutoff) {
				delete(l.attempts, key)
			}
		}
		l.mu.Unlock()
	}
}
