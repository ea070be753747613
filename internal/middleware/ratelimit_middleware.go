package middleware

import (
	"context"
	"net/http"
	"strconv"

	"barterhub/internal/redis"
	"barterhub/internal/services"
	"barterhub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthRateLimitMiddleware limits auth attempts per client IP. Applied to the
// register/login routes only.
func AuthRateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		result, err := limiter.AllowAuth(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis being down must not take auth down with it.
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded", "RATE_LIMITED"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// InterestRateLimitMiddleware limits interest mutations per user. Applied
// after auth middleware.
func InterestRateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	var allow allowFunc
	if limiter != nil {
		allow = limiter.AllowInterest
	}
	return userRateLimit(limiter, allow)
}

// MessageRateLimitMiddleware limits chat messages per user.
func MessageRateLimitMiddleware(limiter *redis.RateLimiter) gin.HandlerFunc {
	var allow allowFunc
	if limiter != nil {
		allow = limiter.AllowMessage
	}
	return userRateLimit(limiter, allow)
}

type allowFunc func(ctx context.Context, userID string) (*redis.RateLimitResult, error)

func userRateLimit(limiter *redis.RateLimiter, allow allowFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		userID, ok := services.UserIDFromContext(c.Request.Context())
		if !ok {
			// No user context; auth middleware handles rejection.
			c.Next()
			return
		}

		result, err := allow(c.Request.Context(), userID.String())
		if err != nil {
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded", "RATE_LIMITED"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.Itoa(int(result.ResetIn.Seconds())))
}
