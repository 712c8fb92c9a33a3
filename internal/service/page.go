package service

import (
	"context"
	"fmt"

	"github.com/preetinest/cms-backend/internal/cache"
	"github.com/preetinest/cms-backend/internal/model"
	"go.uber.org/zap"
)

// MenuCacheKey 菜单缓存 key
const MenuCacheKey = "cms:menu"

// MenuItem 菜单项
type MenuItem struct {
	ID   uint64 `json:"id"`
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Menu 站点菜单，包含全部可见的服务、博客和客户
type Menu struct {
	Services []MenuItem `json:"services"`
	Blogs    []MenuItem `json:"blogs"`
	Clients  []MenuItem `json:"clients"`
}

// ServicePage 服务完整页面
type ServicePage struct {
	Service *model.Service         `json:"service"`
	Details []*model.ServiceDetail `json:"details"`
	FAQs    []*model.ServiceFAQ    `json:"faqs"`
}

// BlogPage 博客完整页面
type BlogPage struct {
	Blog    *model.Blog         `json:"blog"`
	Details []*model.BlogDetail `json:"details"`
	FAQs    []*model.BlogFAQ    `json:"faqs"`
}

// PageServices 页面组装依赖的内容服务
type PageServices struct {
	Services       ServiceService
	ServiceDetails ServiceDetailService
	ServiceFAQs    ServiceFAQService
	Blogs          BlogService
	BlogDetails    BlogDetailService
	BlogFAQs       BlogFAQService
	Clients        ClientService
}

// PageService 面向前台的页面组装
type PageService interface {
	// Menu 返回菜单，三类内容都为空时返回 ErrNotFound
	Menu(ctx context.Context) (*Menu, error)
	// ServicePage 按 slug 返回服务及其详情和 FAQ，不存在时返回 nil
	ServicePage(ctx context.Context, slug string) (*ServicePage, error)
	// BlogPage 按 slug 返回博客及其详情和 FAQ，不存在时返回 nil
	BlogPage(ctx context.Context, slug string) (*BlogPage, error)
}

type pageService struct {
	svc    PageServices
	menu   *cache.JSONCache
	logger *zap.Logger
}

// NewPageService 创建页面服务，menu 为 nil 时不使用缓存
func NewPageService(svc PageServices, menu *cache.JSONCache, logger *zap.Logger) PageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pageService{svc: svc, menu: menu, logger: logger}
}

// MenuInvalidator 返回清理菜单缓存的回调，用作 Deps.OnMenuChange
func MenuInvalidator(menu *cache.JSONCache, logger *zap.Logger) func(ctx context.Context) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context) {
		if err := menu.Invalidate(ctx); err != nil {
			logger.Warn("清理菜单缓存失败", zap.Error(err))
		}
	}
}

func (s *pageService) Menu(ctx context.Context) (*Menu, error) {
	var cached Menu
	hit, err := s.menu.Get(ctx, &cached)
	if err != nil {
		s.logger.Warn("读取菜单缓存失败", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	menu, err := s.buildMenu(ctx)
	if err != nil {
		return nil, err
	}
	if len(menu.Services) == 0 && len(menu.Blogs) == 0 && len(menu.Clients) == 0 {
		return nil, fmt.Errorf("%w: 菜单为空", ErrNotFound)
	}

	if err := s.menu.Set(ctx, menu); err != nil {
		s.logger.Warn("写入菜单缓存失败", zap.Error(err))
	}
	return menu, nil
}

func (s *pageService) buildMenu(ctx context.Context) (*Menu, error) {
	services, err := s.svc.Services.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	blogs, err := s.svc.Blogs.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := s.svc.Clients.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	menu := &Menu{
		Services: make([]MenuItem, 0, len(services)),
		Blogs:    make([]MenuItem, 0, len(blogs)),
		Clients:  make([]MenuItem, 0, len(clients)),
	}
	for _, e := range services {
		menu.Services = append(menu.Services, MenuItem{ID: e.ID, UUID: e.UUID, Name: e.Name, Slug: e.Slug})
	}
	for _, e := range blogs {
		menu.Blogs = append(menu.Blogs, MenuItem{ID: e.ID, UUID: e.UUID, Name: e.Title, Slug: e.Slug})
	}
	for _, e := range clients {
		menu.Clients = append(menu.Clients, MenuItem{ID: e.ID, UUID: e.UUID, Name: e.Name, Slug: e.Slug})
	}
	return menu, nil
}

func (s *pageService) ServicePage(ctx context.Context, slug string) (*ServicePage, error) {
	service, err := s.svc.Services.FindBySlug(ctx, cleanSlug(slug))
	if err != nil || service == nil {
		return nil, err
	}
	details, err := s.svc.ServiceDetails.ListByParent(ctx, service.ID)
	if err != nil {
		return nil, err
	}
	faqs, err := s.svc.ServiceFAQs.ListByParent(ctx, service.ID)
	if err != nil {
		return nil, err
	}
	return &ServicePage{Service: service, Details: details, FAQs: faqs}, nil
}

func (s *pageService) BlogPage(ctx context.Context, slug string) (*BlogPage, error) {
	blog, err := s.svc.Blogs.FindBySlug(ctx, cleanSlug(slug))
	if err != nil || blog == nil {
		return nil, err
	}
	details, err := s.svc.BlogDetails.ListByParent(ctx, blog.ID)
	if err != nil {
		return nil, err
	}
	faqs, err := s.svc.BlogFAQs.ListByParent(ctx, blog.ID)
	if err != nil {
		return nil, err
	}
	return &BlogPage{Blog: blog, Details: details, FAQs: faqs}, nil
}
