package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/pkg/response"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit 基于 Redis 固定窗口的按 IP 限流
// name 区分不同接口；client 为 nil 或 limit <= 0 时不限流；Redis 出错时放行
func RateLimit(client *redis.Client, name string, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("cms:ratelimit:%s:%s", name, c.ClientIP())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("限流计数失败", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("设置限流窗口失败", zap.String("key", key), zap.Error(err))
			}
		}

		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > limit {
			if ttl, err := client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds()+0.5)))
			}
			response.Error(c, response.CodeTooManyReq)
			c.Abort()
			return
		}

		c.Next()
	}
}
