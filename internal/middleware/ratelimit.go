package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit throttles panel requests per client address using a fixed
// one-minute window counted in Redis. The first hit in a window creates the
// counter with a TTL; exceeding the limit yields 429 until it expires.
func RateLimit(client *redis.Client, requestsPerMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		window := time.Now().Unix() / 60
		key := fmt.Sprintf("monitor:ratelimit:%s:%d", c.ClientIP(), window)

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Redis trouble must not lock administrators out.
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, time.Minute)
		}

		if count > int64(requestsPerMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   true,
				"message": "Too many requests",
			})
			return
		}
		c.Next()
	}
}
