package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/middleware"
	"github.com/preetinest/cms-backend/internal/repository"
	"github.com/preetinest/cms-backend/internal/service"
	"github.com/preetinest/cms-backend/pkg/response"
)

// ContentHandler 通用内容实体处理器
type ContentHandler[T any, P repository.Record[T], R any] struct {
	svc     service.ContentService[T, P, R]
	present func(P) any
	// BySlug 注册 GET /slug/:slug
	BySlug bool
	// ByParent 注册 GET /parent/:parentId
	ByParent bool
}

// NewContentHandler 创建内容处理器，present 为 nil 时实体原样返回
func NewContentHandler[T any, P repository.Record[T], R any](svc service.ContentService[T, P, R], present func(P) any) *ContentHandler[T, P, R] {
	if present == nil {
		present = asIs[P]
	}
	return &ContentHandler[T, P, R]{svc: svc, present: present}
}

// WithSlug 启用按 slug 查询
func (h *ContentHandler[T, P, R]) WithSlug() *ContentHandler[T, P, R] {
	h.BySlug = true
	return h
}

// WithParent 启用按父级查询
func (h *ContentHandler[T, P, R]) WithParent() *ContentHandler[T, P, R] {
	h.ByParent = true
	return h
}

// Register 注册路由，读接口挂在 read 上，写接口挂在 write 上
func (h *ContentHandler[T, P, R]) Register(read, write *gin.RouterGroup) {
	read.GET("", h.List)
	read.GET("/:id", h.Get)
	read.GET("/uuid/:uuid", h.GetByUUID)
	if h.BySlug {
		read.GET("/slug/:slug", h.GetBySlug)
	}
	if h.ByParent {
		read.GET("/parent/:parentId", h.ListByParent)
	}

	write.POST("", h.Create)
	write.PUT("/:id", h.Update)
	write.DELETE("/:id", h.Delete)
}

// Create 创建实体
// POST /api/v1/{entity}
func (h *ContentHandler[T, P, R]) Create(c *gin.Context) {
	var req R
	if !bindJSON(c, &req) {
		return
	}
	entity, err := h.svc.Create(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, h.present(entity))
}

// Get 按 ID 获取
// GET /api/v1/{entity}/:id
func (h *ContentHandler[T, P, R]) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.one(c)(h.svc.FindByID(c.Request.Context(), id))
}

// GetByUUID 按外部 ID 获取
// GET /api/v1/{entity}/uuid/:uuid
func (h *ContentHandler[T, P, R]) GetByUUID(c *gin.Context) {
	h.one(c)(h.svc.FindByUUID(c.Request.Context(), c.Param("uuid")))
}

// GetBySlug 按 slug 获取
// GET /api/v1/{entity}/slug/:slug
func (h *ContentHandler[T, P, R]) GetBySlug(c *gin.Context) {
	h.one(c)(h.svc.FindBySlug(c.Request.Context(), c.Param("slug")))
}

func (h *ContentHandler[T, P, R]) one(c *gin.Context) func(P, error) {
	return func(entity P, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		if entity == nil {
			notFound(c, h.svc.Kind())
			return
		}
		response.Success(c, h.present(entity))
	}
}

// List 列出可见实体
// GET /api/v1/{entity}
func (h *ContentHandler[T, P, R]) List(c *gin.Context) {
	items, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, presentAll(items, h.present))
}

// ListByParent 列出父级下的可见实体
// GET /api/v1/{entity}/parent/:parentId
func (h *ContentHandler[T, P, R]) ListByParent(c *gin.Context) {
	parentID, ok := paramID(c, "parentId")
	if !ok {
		return
	}
	items, err := h.svc.ListByParent(c.Request.Context(), parentID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, presentAll(items, h.present))
}

// Update 更新实体
// PUT /api/v1/{entity}/:id
func (h *ContentHandler[T, P, R]) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req R
	if !bindJSON(c, &req) {
		return
	}
	entity, err := h.svc.Update(c.Request.Context(), id, req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, h.present(entity))
}

// Delete 软删除实体
// DELETE /api/v1/{entity}/:id
func (h *ContentHandler[T, P, R]) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SoftDelete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
