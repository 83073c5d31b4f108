package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zelador/internal/infrastructure/ratelimit"
	"zelador/internal/shared/logger"
	"zelador/internal/shared/utils"
)

// TokenRateLimit throttles the unauthenticated supplier endpoints per client IP.
// When the limiter backend is unavailable the request is allowed through to
// avoid blocking all supplier traffic.
func TokenRateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err, "client_ip", c.ClientIP())
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
