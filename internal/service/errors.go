// Package service 业务逻辑层
package service

import (
	"errors"

	"github.com/preetinest/cms-backend/internal/media"
)

// 业务错误分类，返回时通过 fmt.Errorf("%w: ...") 附带具体的 ID、slug 或角色要求
var (
	ErrInvalidArgument = errors.New("参数无效")
	ErrNotFound        = errors.New("资源不存在")
	ErrConflict        = errors.New("资源冲突")
	ErrUploadFailed    = media.ErrUploadFailed
)
