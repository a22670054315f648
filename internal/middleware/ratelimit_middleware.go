package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/keremaydin/acadport/internal/app/models/dto"
)

// RateLimiter throttles requests with a fixed window counter in Redis. Keys
// are scoped per client IP so one abusive source cannot lock everyone out.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger zerolog.Logger
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *redis.Client, limit int, window time.Duration, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// allow increments the window counter for key and reports whether the request
// is within the limit. The window starts when its first request arrives.
func (r *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	pipe := r.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return count.Val() <= int64(r.limit), nil
}

// Limit returns a middleware enforcing the configured limit for the named
// action. Redis outages fail open; blocking signins on a cache failure would
// be a worse outage than the abuse the limiter prevents.
func (r *RateLimiter) Limit(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + action + ":" + c.ClientIP()

		ok, err := r.allow(c.Request.Context(), key)
		if err != nil {
			r.logger.Warn().Err(err).Str("action", action).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeTooManyRequests, "Too many requests")
			errorDetail = errorDetail.WithDetails("Try again later")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
