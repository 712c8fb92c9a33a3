// Package storage 对象存储后端，对外只提供按 key 写入公开可读对象
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/preetinest/cms-backend/internal/config"
)

// ErrEmptyKey 对象 key 为空
var ErrEmptyKey = errors.New("对象 key 不能为空")

// Store 对象存储接口
type Store interface {
	// Put 写入对象，写入后可通过公开地址访问
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// New 按配置创建存储后端
func New(cfg *config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Store(cfg)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Driver)
	}
}
