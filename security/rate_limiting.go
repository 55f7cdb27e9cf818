package security

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"golang.org/x/time/rate"
)

// defaultExpiresIn is how long an idle client keeps its bucket.
const defaultExpiresIn = 3 * time.Minute

// RateLimiter hands out one token bucket per client identifier. It satisfies
// echo's middleware.RateLimiterStore. Buckets idle longer than ExpiresIn are
// dropped on the next sweep.
type RateLimiter struct {
	ExpiresIn time.Duration

	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	visitors    map[string]*visitor
	lastCleanup time.Time
	now         func() time.Time
}

type visitor struct {
	*rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		ExpiresIn:   defaultExpiresIn,
		limit:       rate.Limit(perSecond),
		burst:       burst,
		visitors:    make(map[string]*visitor),
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

func (r *RateLimiter) Allow(identifier string) (bool, error) {
	r.mu.Lock()
	now := r.now()

	v, ok := r.visitors[identifier]
	if !ok {
		v = &visitor{Limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[identifier] = v
	}
	v.lastSeen = now

	if now.Sub(r.lastCleanup) > r.ExpiresIn {
		r.cleanupStaleVisitors(now)
	}
	r.mu.Unlock()

	return v.AllowN(now, 1), nil
}

// cleanupStaleVisitors must be called with mu held.
func (r *RateLimiter) cleanupStaleVisitors(now time.Time) {
	for id, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.ExpiresIn {
			delete(r.visitors, id)
		}
	}
	r.lastCleanup = now
}

// SubmitRateLimit throttles booking submissions per client IP.
func (r *RateLimiter) SubmitRateLimit() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "Unable to identify client.",
			})
		},
	})
}

// Anti-bot protection
func (r *RateLimiter) AntiBotMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userAgent := c.Request().Header.Get("User-Agent")
			if isSuspiciousUserAgent(userAgent) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "Access denied",
				})
			}
			return next(c)
		}
	}
}

func isSuspiciousUserAgent(ua string) bool {
	ua = strings.ToLower(ua)
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(ua, pattern) {
			return true
		}
	}
	return false
}
