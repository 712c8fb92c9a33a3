package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/media"
	"github.com/preetinest/cms-backend/pkg/response"
)

// UploadHandler 图片上传处理器
type UploadHandler struct {
	media    *media.Resolver
	maxBytes int64
}

// NewUploadHandler 创建上传处理器，maxMB 为单个文件上限
func NewUploadHandler(resolver *media.Resolver, maxMB int64) *UploadHandler {
	if maxMB <= 0 {
		maxMB = 10
	}
	return &UploadHandler{media: resolver, maxBytes: maxMB << 20}
}

// Upload 上传图片，返回 key 和公开 URL
// POST /api/v1/images/upload (multipart, 字段 file)
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithMsg(c, response.CodeMissingParam, "缺少上传文件 file")
		return
	}
	if header.Size > h.maxBytes {
		response.Error(c, response.CodeFileTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}
	if int64(len(data)) > h.maxBytes {
		response.Error(c, response.CodeFileTooLarge)
		return
	}

	key, err := h.media.Upload(c.Request.Context(), data, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		if errors.Is(err, media.ErrInvalidImage) || errors.Is(err, media.ErrInvalidFileName) {
			response.ErrorWithMsg(c, response.CodeInvalidRequest, err.Error())
			return
		}
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"key": key,
		"url": h.media.FullURL(key),
	})
}
