// Package handler HTTP 处理器
package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/middleware"
	"github.com/preetinest/cms-backend/internal/service"
	"github.com/preetinest/cms-backend/pkg/response"
	"go.uber.org/zap"
)

// respondError 将业务错误转换为响应
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		response.ErrorWithMsg(c, response.CodeInvalidRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.ErrorWithMsg(c, response.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		response.ErrorWithMsg(c, response.CodeConflict, err.Error())
	case errors.Is(err, service.ErrUploadFailed):
		middleware.GetLogger().Error("文件上传失败", zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, response.CodeUploadFailed)
	default:
		middleware.GetLogger().Error("请求处理失败",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.Error(c, response.CodeServerError)
	}
}

// paramID 解析路径中的数字 ID，失败时已写入响应
func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithMsg(c, response.CodeInvalidFormat, name+" 必须是正整数")
		return 0, false
	}
	return id, true
}

// bindJSON 绑定请求体，失败时已写入响应
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "参数错误: "+err.Error())
		return false
	}
	return true
}

// notFound 查询结果为空
func notFound(c *gin.Context, kind string) {
	response.ErrorWithMsg(c, response.CodeNotFound, kind+"不存在")
}
