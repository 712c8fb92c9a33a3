package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/preetinest/cms-backend/internal/model"
)

// 无法定位页面时的名称
const (
	PageNameHomepage    = "Homepage / Contact Form"
	pageNameUnknownTmpl = "Unknown Page (slug: %s)"
)

// PageRef 咨询来源页面
type PageRef struct {
	PageType string `json:"page_type"`
	PageName string `json:"page_name"`
}

// SlugResolver 根据访客提交的 slug 判断来源页面
type SlugResolver interface {
	// Resolve 依次在服务、博客、客户中查找可见匹配，找不到时归为 GENERAL，从不拒绝
	Resolve(ctx context.Context, slug string) (PageRef, error)
}

// pageSource 一类页面的查找，返回页面名称，未找到返回 false
type pageSource struct {
	pageType string
	lookup   func(ctx context.Context, slug string) (string, bool, error)
}

type slugResolver struct {
	sources []pageSource
}

// NewSlugResolver 创建 slug 解析器，查找顺序为服务、博客、客户
func NewSlugResolver(services ServiceService, blogs BlogService, clients ClientService) SlugResolver {
	return &slugResolver{sources: []pageSource{
		{pageType: model.PageTypeService, lookup: func(ctx context.Context, slug string) (string, bool, error) {
			s, err := services.FindBySlug(ctx, slug)
			if err != nil || s == nil {
				return "", false, err
			}
			return s.Name, true, nil
		}},
		{pageType: model.PageTypeBlog, lookup: func(ctx context.Context, slug string) (string, bool, error) {
			b, err := blogs.FindBySlug(ctx, slug)
			if err != nil || b == nil {
				return "", false, err
			}
			return b.Title, true, nil
		}},
		{pageType: model.PageTypeClient, lookup: func(ctx context.Context, slug string) (string, bool, error) {
			c, err := clients.FindBySlug(ctx, slug)
			if err != nil || c == nil {
				return "", false, err
			}
			return c.Name, true, nil
		}},
	}}
}

func (r *slugResolver) Resolve(ctx context.Context, slug string) (PageRef, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return PageRef{PageType: model.PageTypeGeneral, PageName: PageNameHomepage}, nil
	}
	for _, src := range r.sources {
		name, ok, err := src.lookup(ctx, slug)
		if err != nil {
			return PageRef{}, err
		}
		if ok {
			return PageRef{PageType: src.pageType, PageName: name}, nil
		}
	}
	return PageRef{PageType: model.PageTypeGeneral, PageName: fmt.Sprintf(pageNameUnknownTmpl, slug)}, nil
}
