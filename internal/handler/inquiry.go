package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/middleware"
	"github.com/preetinest/cms-backend/internal/service"
	"github.com/preetinest/cms-backend/pkg/response"
)

// InquiryHandler 咨询处理器
type InquiryHandler struct {
	svc service.InquiryService
}

// NewInquiryHandler 创建咨询处理器
func NewInquiryHandler(svc service.InquiryService) *InquiryHandler {
	return &InquiryHandler{svc: svc}
}

// Create 访客提交咨询，携带有效令牌时记录提交人
// POST /api/v1/inquiries
func (h *InquiryHandler) Create(c *gin.Context) {
	var req service.InquiryRequest
	if !bindJSON(c, &req) {
		return
	}
	inquiry, err := h.svc.Create(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMsg(c, "提交成功", inquiry)
}

// List 分页列出咨询，page 从 0 开始
// GET /api/v1/inquiries?page=0&size=20
func (h *InquiryHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidFormat, "page 必须是整数")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(service.DefaultPageSize)))
	if err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidFormat, "size 必须是整数")
		return
	}

	result, err := h.svc.List(c.Request.Context(), middleware.UserID(c), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// Get 按 ID 获取咨询
// GET /api/v1/inquiries/:id
func (h *InquiryHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	inquiry, err := h.svc.FindByID(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if inquiry == nil {
		notFound(c, "咨询")
		return
	}
	response.Success(c, inquiry)
}

// GetByUUID 按外部 ID 获取咨询
// GET /api/v1/inquiries/uuid/:uuid
func (h *InquiryHandler) GetByUUID(c *gin.Context) {
	inquiry, err := h.svc.FindByUUID(c.Request.Context(), c.Param("uuid"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if inquiry == nil {
		notFound(c, "咨询")
		return
	}
	response.Success(c, inquiry)
}

// Update 修改咨询联系信息
// PUT /api/v1/inquiries/:id
func (h *InquiryHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.InquiryUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	inquiry, err := h.svc.Update(c.Request.Context(), id, req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, inquiry)
}

// Delete 软删除咨询
// DELETE /api/v1/inquiries/:id
func (h *InquiryHandler) Delete(c *gin.Context) {
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
