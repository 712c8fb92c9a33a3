package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/service"
	"github.com/preetinest/cms-backend/pkg/response"
	"go.uber.org/zap"
)

// RequireAdmin 管理员检查中间件，须放在 JWTAuth 之后
// 令牌中的角色可能已过期，这里按数据库中的当前状态校验
func RequireAdmin(guard service.AdminGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == 0 {
			response.Error(c, response.CodeInvalidToken)
			c.Abort()
			return
		}

		if _, err := guard.RequireAdmin(c.Request.Context(), userID); err != nil {
			if errors.Is(err, service.ErrInvalidArgument) || errors.Is(err, service.ErrNotFound) {
				response.ErrorWithMsg(c, response.CodeForbidden, "需要管理员权限")
			} else {
				logger.Error("管理员校验失败", zap.Uint64("user_id", userID), zap.Error(err))
				response.Error(c, response.CodeServerError)
			}
			c.Abort()
			return
		}

		c.Next()
	}
}
