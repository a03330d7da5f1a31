package middleware

import (
	"net/http"
	"time"
	"tripzy/pkg/utils"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware gives every client IP its own token bucket. Idle buckets are
// dropped after an hour.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			return c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Limit(rps), burst), time.Hour
		},
		func(c *gin.Context) {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
		},
	)
}
