package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/preetinest/cms-backend/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 进程日志，InitLogger 之前使用 info 级别的 JSON 输出
var logger = mustBuildLogger(config.LogConfig{Level: "info", Format: "json"})

// InitLogger 按配置重建进程日志
func InitLogger(cfg config.LogConfig) error {
	l, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func mustBuildLogger(cfg config.LogConfig) *zap.Logger {
	l, err := buildLogger(cfg)
	if err != nil {
		panic(err)
	}
	return l
}

func buildLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.MessageKey = "msg"
	return zc.Build()
}

// GetLogger 获取日志实例
func GetLogger() *zap.Logger {
	return logger
}

// Logger 请求日志中间件，生成或透传 X-Request-ID
// 5xx 按 warn 记录，健康检查只在失败时记录
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if c.FullPath() == "/health" && status < 400 {
			return
		}
		write := logger.Info
		if status >= 500 {
			write = logger.Warn
		}
		write("HTTP 请求",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Uint64("user_id", UserID(c)),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		)
	}
}
