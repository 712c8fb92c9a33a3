package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/pkg/response"
	"go.uber.org/zap"
)

// Recovery 捕获 panic，记录堆栈后返回统一的服务器错误
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			logger.Error("请求处理 panic",
				zap.String("request_id", c.GetString("request_id")),
				zap.Uint64("user_id", UserID(c)),
				zap.Any("error", r),
				zap.String("stack", string(debug.Stack())),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
			response.Error(c, response.CodeServerError)
			c.Abort()
		}()
		c.Next()
	}
}
