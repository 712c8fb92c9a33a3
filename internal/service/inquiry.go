package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
	"go.uber.org/zap"
)

// 咨询分页参数，页码从 0 开始
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// maxPageNameLength 与 inquiries.page_name 列宽一致
const maxPageNameLength = 500

// InquiryRequest 访客咨询请求，状态字段一律忽略
type InquiryRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Message  string `json:"message"`
	Slug     string `json:"slug"`
}

// InquiryUpdateRequest 管理员修改咨询联系信息，来源页面不可修改
type InquiryUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Message  string `json:"message"`
}

// PageResult 分页结果
type PageResult[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"current_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	PageSize    int   `json:"page_size"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPageResult 根据总数计算分页信息
func NewPageResult[T any](items []T, page repository.Pagination, total int64) *PageResult[T] {
	pages := 0
	if page.PageSize > 0 {
		pages = int((total + int64(page.PageSize) - 1) / int64(page.PageSize))
	}
	if items == nil {
		items = []T{}
	}
	return &PageResult[T]{
		Items:       items,
		CurrentPage: page.Page,
		TotalItems:  total,
		TotalPages:  pages,
		PageSize:    page.PageSize,
		HasNext:     page.Page+1 < pages,
		HasPrevious: page.Page > 0,
	}
}

// InquiryService 咨询服务
type InquiryService interface {
	// Create 提交咨询，来源页面由 slug 解析得出；actorID 为 0 表示匿名访客
	Create(ctx context.Context, req InquiryRequest, actorID uint64) (*model.Inquiry, error)
	// List 分页列出可见咨询，最新的在前，需要管理员
	List(ctx context.Context, actorID uint64, page, size int) (*PageResult[*model.Inquiry], error)
	// FindByID 按 ID 查询可见咨询，需要管理员
	FindByID(ctx context.Context, id uint64, actorID uint64) (*model.Inquiry, error)
	// FindByUUID 按外部 ID 查询可见咨询，需要管理员
	FindByUUID(ctx context.Context, uuid string, actorID uint64) (*model.Inquiry, error)
	// Update 修改联系信息，需要管理员
	Update(ctx context.Context, id uint64, req InquiryUpdateRequest, actorID uint64) (*model.Inquiry, error)
	// SoftDelete 软删除咨询，需要管理员
	SoftDelete(ctx context.Context, id uint64, actorID uint64) error
}

type inquiryService struct {
	repo     repository.InquiryRepository
	resolver SlugResolver
	guard    AdminGuard
	logger   *zap.Logger
}

// NewInquiryService 创建咨询服务
func NewInquiryService(repo repository.InquiryRepository, resolver SlugResolver, deps Deps) InquiryService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &inquiryService{
		repo:     repo,
		resolver: resolver,
		guard:    deps.Guard,
		logger:   logger.With(zap.String("kind", kindInquiry)),
	}
}

func (s *inquiryService) Create(ctx context.Context, req InquiryRequest, actorID uint64) (*model.Inquiry, error) {
	if err := validateContact(req.Name, req.Email, req.Phone, req.Location); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(req.Slug)
	ref, err := s.resolver.Resolve(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("解析来源页面失败: %w", err)
	}

	// 来源 slug 与页面名称只作记录，超长时截断而不拒绝
	inquiry := &model.Inquiry{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		Message:  req.Message,
		PageType: ref.PageType,
		PageName: truncate(ref.PageName, maxPageNameLength),
	}
	if slug != "" {
		slug = truncate(slug, MaxSlugLength)
		inquiry.Slug = &slug
	}
	inquiry.Activate()

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("创建%s失败: %w", kindInquiry, err)
	}

	s.logger.Info("收到咨询",
		zap.Uint64("id", inquiry.ID),
		zap.String("page_type", inquiry.PageType),
		zap.Uint64("actor_id", actorID),
	)
	return inquiry, nil
}

func (s *inquiryService) List(ctx context.Context, actorID uint64, page, size int) (*PageResult[*model.Inquiry], error) {
	if _, err := s.guard.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if page < 0 {
		return nil, fmt.Errorf("%w: page 从 0 开始", ErrInvalidArgument)
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}

	p := repository.Pagination{Page: page, PageSize: size}
	items, total, err := s.repo.ListVisiblePage(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("查询%s列表失败: %w", kindInquiry, err)
	}
	return NewPageResult(items, p, total), nil
}

func (s *inquiryService) FindByID(ctx context.Context, id uint64, actorID uint64) (*model.Inquiry, error) {
	if _, err := s.guard.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.visible(s.repo.GetByID(ctx, id))
}

func (s *inquiryService) FindByUUID(ctx context.Context, uuid string, actorID uint64) (*model.Inquiry, error) {
	if _, err := s.guard.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.visible(s.repo.GetByUUID(ctx, uuid))
}

func (s *inquiryService) visible(inquiry *model.Inquiry, err error) (*model.Inquiry, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询%s失败: %w", kindInquiry, err)
	}
	if !inquiry.IsVisible() {
		return nil, nil
	}
	return inquiry, nil
}

func (s *inquiryService) Update(ctx context.Context, id uint64, req InquiryUpdateRequest, actorID uint64) (*model.Inquiry, error) {
	if _, err := s.guard.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	inquiry, err := s.loadUsable(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateContact(req.Name, req.Email, req.Phone, req.Location); err != nil {
		return nil, err
	}

	inquiry.Name = req.Name
	inquiry.Email = req.Email
	inquiry.Phone = req.Phone
	inquiry.Location = req.Location
	inquiry.Message = req.Message

	if err := s.repo.Save(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("更新%s %d 失败: %w", kindInquiry, id, err)
	}
	s.logger.Info("更新成功", zap.Uint64("id", id), zap.Uint64("actor_id", actorID))
	return inquiry, nil
}

func (s *inquiryService) SoftDelete(ctx context.Context, id uint64, actorID uint64) error {
	if _, err := s.guard.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	inquiry, err := s.loadUsable(ctx, id)
	if err != nil {
		return err
	}
	inquiry.MarkDeleted()
	if err := s.repo.Save(ctx, inquiry); err != nil {
		return fmt.Errorf("删除%s %d 失败: %w", kindInquiry, id, err)
	}
	s.logger.Info("删除成功", zap.Uint64("id", id), zap.Uint64("actor_id", actorID))
	return nil
}

func (s *inquiryService) loadUsable(ctx context.Context, id uint64) (*model.Inquiry, error) {
	inquiry, err := s.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询%s %d 失败: %w", kindInquiry, id, err)
	}
	if inquiry == nil || !inquiry.IsUsable() {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, kindInquiry, id)
	}
	return inquiry, nil
}

func validateContact(name, email, phone, location string) error {
	err := firstErr(
		requiredText("name", name, maxNameLength),
		requiredText("email", email, maxNameLength),
		maxLength("phone", phone, maxPhoneLength),
		maxLength("location", location, maxNameLength),
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArgument, kindInquiry, err)
	}
	return nil
}
