package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/service"
	"github.com/preetinest/cms-backend/pkg/response"
)

// PageHandler 前台页面处理器
type PageHandler struct {
	svc     service.PageService
	present *Presenter
}

// NewPageHandler 创建页面处理器
func NewPageHandler(svc service.PageService, present *Presenter) *PageHandler {
	return &PageHandler{svc: svc, present: present}
}

// Menu 获取菜单
// GET /api/v1/menus
func (h *PageHandler) Menu(c *gin.Context) {
	menu, err := h.svc.Menu(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, menu)
}

// ServicePage 获取服务完整页面
// GET /api/v1/pages/services/:slug
func (h *PageHandler) ServicePage(c *gin.Context) {
	page, err := h.svc.ServicePage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if page == nil {
		notFound(c, "服务")
		return
	}
	response.Success(c, h.present.ServicePage(page))
}

// BlogPage 获取博客完整页面
// GET /api/v1/pages/blogs/:slug
func (h *PageHandler) BlogPage(c *gin.Context) {
	page, err := h.svc.BlogPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if page == nil {
		notFound(c, "博客")
		return
	}
	response.Success(c, h.present.BlogPage(page))
}
