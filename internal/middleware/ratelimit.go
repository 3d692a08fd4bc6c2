package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/learnhub/learnhub-backend/internal/logger"
	"github.com/learnhub/learnhub-backend/internal/requestdata"
)

type RateLimiter struct {
	log         *logger.Logger
	redisClient *redis.Client
}

func NewRateLimiter(log *logger.Logger, redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{
		log:         log.With("middleware", "RateLimiter"),
		redisClient: redisClient,
	}
}

// Limit applies a fixed window per user (falling back to client IP before
// auth runs). With no redis client configured the limiter is a no-op, so AI
// endpoints stay usable in local development.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.redisClient == nil {
			c.Next()
			return
		}

		subject := c.ClientIP()
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
			subject = rd.UserID.String()
		}
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, subject)

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			// Redis being down must not take the endpoint with it.
			rl.log.Warn("rate limit check skipped", "error", err.Error())
			c.Next()
			return
		}
		if count == 1 {
			rl.redisClient.Expire(c, key, window)
		}
		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(c, key).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}
