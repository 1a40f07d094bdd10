package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"talentboard/pkg/models"
	"talentboard/pkg/utils"
)

// clientLimiter tracks the token bucket for a single caller.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client token bucket, keyed by remote IP.
// Model-bound endpoints are paid and slow, so each caller gets a bounded
// request budget rather than the server a global one.
type RateLimiter struct {
	perMinute int
	burst     int
	clients   map[string]*clientLimiter
	mu        sync.Mutex
}

// NewRateLimiter creates a rate limiter allowing perMinute requests with
// the given burst per client. Idle client entries are dropped in the
// background.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		perMinute: perMinute,
		burst:     burst,
		clients:   make(map[string]*clientLimiter),
	}

	go rl.cleanup()

	return rl
}

// Middleware returns the echo middleware enforcing the limit.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.allow(c.RealIP()) {
				requestID, _ := c.Get("request_id").(string)
				if requestID == "" {
					requestID = utils.GenerateRequestID()
				}
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:     "rate_limited",
					Message:   "Too many analysis requests, slow down",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, ok := rl.clients[clientIP]
	if !ok {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.burst),
		}
		rl.clients[clientIP] = client
	}
	client.lastSeen = time.Now()

	return client.limiter.Allow()
}

// cleanup drops client entries not seen for a while.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		rl.mu.Lock()
		for ip, client := range rl.clients {
			if client.lastSeen.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}
