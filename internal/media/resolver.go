// Package media 处理图片上传和对象 key 与公开 URL 之间的转换
// 数据库中只保存 key，URL 在读取时由 FullURL 拼接
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// 媒体相关错误
var (
	ErrUploadFailed    = errors.New("文件上传失败")
	ErrInvalidImage    = errors.New("图片数据无效")
	ErrInvalidFileName = errors.New("文件名不合法")
)

// ObjectStore 对象存储，写入后对象公开可读
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// 常见图片类型对应的扩展名
var contentTypeExt = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/jpg":     ".jpg",
	"image/webp":    ".webp",
	"image/avif":    ".avif",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Resolver 媒体引用解析器
type Resolver struct {
	store   ObjectStore
	baseURL string
}

// NewResolver 创建解析器，baseURL 为对象公开访问前缀
func NewResolver(store ObjectStore, baseURL string) *Resolver {
	return &Resolver{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload 上传字节内容并返回 key
// fileName 非空时 key 为「清洗后的文件名-8 位随机串.扩展名」，否则为「UUID.扩展名」
func (r *Resolver) Upload(ctx context.Context, data []byte, contentType, fileName string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: 内容为空", ErrInvalidImage)
	}

	detected := mimetype.Detect(data)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = detected.String()
	}
	// 去掉 charset 等参数
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	var key string
	if fileName != "" {
		stem, ext, err := splitFileName(fileName)
		if err != nil {
			return "", err
		}
		if ext == "" {
			ext = extension(contentType, detected)
		}
		key = stem + "-" + strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	} else {
		key = uuid.NewString() + extension(contentType, detected)
	}

	if err := r.store.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUploadFailed, key, err)
	}
	return key, nil
}

// UploadBase64 上传 base64 图片，支持 data URI（data:image/png;base64,...）和裸 base64
func (r *Resolver) UploadBase64(ctx context.Context, encoded string) (string, error) {
	data, contentType, err := DecodeDataURI(encoded)
	if err != nil {
		return "", err
	}
	return r.Upload(ctx, data, contentType, "")
}

// FullURL 根据 key 拼接公开 URL，key 为空时返回空串
func (r *Resolver) FullURL(key string) string {
	if key == "" {
		return ""
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return r.baseURL + "/" + strings.TrimLeft(key, "/")
}

// KeyFromURL 将本存储的公开 URL 还原为 key，其他输入原样返回
func (r *Resolver) KeyFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if r.baseURL != "" && strings.HasPrefix(raw, r.baseURL+"/") {
		return strings.TrimPrefix(raw, r.baseURL+"/")
	}
	return raw
}

// DecodeDataURI 解析 data URI 或裸 base64，返回内容和声明的类型
func DecodeDataURI(encoded string) ([]byte, string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, "", fmt.Errorf("%w: 内容为空", ErrInvalidImage)
	}

	contentType := ""
	if strings.HasPrefix(encoded, "data:") {
		comma := strings.Index(encoded, ",")
		if comma < 0 {
			return nil, "", fmt.Errorf("%w: data URI 缺少逗号", ErrInvalidImage)
		}
		header := encoded[len("data:"):comma]
		if !strings.HasSuffix(header, ";base64") {
			return nil, "", fmt.Errorf("%w: 仅支持 base64 编码", ErrInvalidImage)
		}
		contentType = strings.TrimSuffix(header, ";base64")
		encoded = encoded[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: base64 解码失败", ErrInvalidImage)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: 内容为空", ErrInvalidImage)
	}
	return data, contentType, nil
}

// splitFileName 清洗文件名，拒绝路径穿越
func splitFileName(name string) (string, string, error) {
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidFileName, name)
	}
	ext := strings.ToLower(path.Ext(name))
	stem := strings.TrimSuffix(name, path.Ext(name))
	stem = strings.Trim(unsafeChars.ReplaceAllString(stem, "-"), "-")
	if stem == "" {
		stem = "file"
	}
	if ext != "" && unsafeChars.MatchString(ext[1:]) {
		ext = ""
	}
	return strings.ToLower(stem), ext, nil
}

// extension 按声明类型推断扩展名，未知时使用探测结果，仍未知则按 jpg 处理
func extension(contentType string, detected *mimetype.MIME) string {
	if ext, ok := contentTypeExt[strings.ToLower(contentType)]; ok {
		return ext
	}
	if ext := detected.Extension(); ext != "" {
		return ext
	}
	return ".jpg"
}
