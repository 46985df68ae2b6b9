package middleware

import (
	"net/http"
	"sync"
	"time"

	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. Applied to the auth
// group so login/register cannot be brute-forced.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*rate.Limiter
}

// NewRateLimiter allows max requests per window with the same burst.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Every(window / time.Duration(max)),
		burst:    max,
		visitors: make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) visitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.visitors[ip]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.visitors[ip] = limiter
	}
	return limiter
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.visitor(c.ClientIP()).Allow() {
			utils.JSONError(c, http.StatusTooManyRequests, "too many attempts, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
