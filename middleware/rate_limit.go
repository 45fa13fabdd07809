package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc is a function that returns a unique key for rate limiting (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Message is the error message returned when rate limit is exceeded
	Message string
}

// rateLimitEntry tracks request count and window expiration
type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is a per-endpoint rate limiter
type RateLimiter struct {
	config RateLimitConfig
	store  map[string]*rateLimitEntry
	mu     sync.Mutex
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}

	rl := &RateLimiter{
		config: config,
		store:  make(map[string]*rateLimitEntry),
	}

	go rl.cleanup()

	return rl
}

// Allow records one request for key and reports whether it fits the window
func (rl *RateLimiter) Allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.store[key]
	if !exists || now.After(entry.expiresAt) {
		rl.store[key] = &rateLimitEntry{count: 1, expiresAt: now.Add(rl.config.Window)}
		return true
	}
	if entry.count >= rl.config.Requests {
		return false
	}
	entry.count++
	return true
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.Allow(rl.config.KeyFunc(c), time.Now()) {
				return next(c)
			}

			if IsHTMX(c) {
				return ErrorToast(c, http.StatusTooManyRequests, rl.config.Message)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}

// cleanup removes expired entries every minute
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, entry := range rl.store {
			if now.After(entry.expiresAt) {
				delete(rl.store, key)
			}
		}
		rl.mu.Unlock()
	}
}

// CredentialKey keys the limiter by the request credential so that several
// operators behind one proxy do not share a budget. Anonymous requests fall
// back to the client IP. The credential is hashed before it is used as a key.
func CredentialKey(c echo.Context) string {
	if token := GetAPIToken(c); token != "" {
		sum := sha256.Sum256([]byte(token))
		return "tok:" + hex.EncodeToString(sum[:8])
	}
	return "ip:" + c.RealIP()
}

// Pre-configured rate limiters for the region screens

// MutationRateLimiter limits region saves and deletes to 30 per minute per credential
var MutationRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 30,
	Window:   1 * time.Minute,
	KeyFunc:  CredentialKey,
	Message:  "Too many changes in a short time. Please wait a moment and try again.",
})

// ExportRateLimiter limits spreadsheet exports to 5 per minute per credential
var ExportRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 5,
	Window:   1 * time.Minute,
	KeyFunc:  CredentialKey,
	Message:  "Too many exports. Please wait a minute before trying again.",
})
