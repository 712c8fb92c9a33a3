package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/pkg/response"
)

// Checker 依赖健康检查
type Checker func(ctx context.Context) error

// Health 健康检查，各依赖出错时标记为 error，接口本身总是返回成功
// GET /health
func Health(checks map[string]Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}
		for name, check := range checks {
			status := "ok"
			if err := check(c.Request.Context()); err != nil {
				status = "error"
			}
			data[name] = status
		}
		response.Success(c, data)
	}
}
