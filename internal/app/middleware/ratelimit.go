package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-petportal/internal/app/models"
)

const rateLimitedMessage = "Too many attempts. Please wait a moment and try again."

// RateLimiter tracks request rates per client
type RateLimiter struct {
	clients *cache.Cache
	mu      sync.Mutex
	logger  *zap.Logger

	maxRequests int
	window      time.Duration
}

// NewRateLimiter creates a new rate limiter. A non-positive maxRequests
// disables limiting.
func NewRateLimiter(logger *zap.Logger, maxRequests int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		clients:     cache.New(window, window*2),
		logger:      logger,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Allow checks if a request from clientID should be allowed
func (rl *RateLimiter) Allow(clientID string) bool {
	if rl.maxRequests <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	var recent []time.Time
	if v, found := rl.clients.Get(clientID); found {
		for _, t := range v.([]time.Time) {
			if t.After(cutoff) {
				recent = append(recent, t)
			}
		}
	}

	if len(recent) >= rl.maxRequests {
		rl.logger.Warn("Rate limit exceeded",
			zap.String("client_id", clientID),
			zap.Int("requests", len(recent)),
			zap.Int("max_requests", rl.maxRequests),
			zap.Duration("window", rl.window))
		rl.clients.Set(clientID, recent, rl.window)
		return false
	}

	rl.clients.Set(clientID, append(recent, now), rl.window)
	return true
}

// Middleware rejects callers over the limit with 429, keyed by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.Allow(c.ClientIP()) {
			c.Next()
			return
		}

		c.Header("Retry-After", rl.retryAfter())
		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ActionFailure{Error: rateLimitedMessage})
			return
		}
		c.String(http.StatusTooManyRequests, rateLimitedMessage)
		c.Abort()
	}
}

func (rl *RateLimiter) retryAfter() string {
	return strconv.Itoa(int(rl.window.Round(time.Second).Seconds()))
}
