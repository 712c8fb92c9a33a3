package handler

import (
	"github.com/preetinest/cms-backend/internal/media"
	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/service"
)

// 响应视图：在实体基础上补充读取时计算的图片 URL

type serviceView struct {
	*model.Service
	IconURL  string `json:"icon_url"`
	ImageURL string `json:"image_url"`
}

type blogView struct {
	*model.Blog
	ImageURL string `json:"image_url"`
}

type blogDetailView struct {
	*model.BlogDetail
	ImageURL string `json:"image_url"`
}

type clientView struct {
	*model.Client
	LogoURL string `json:"logo_url"`
}

// Presenter 根据媒体解析器生成响应视图
type Presenter struct {
	media *media.Resolver
}

// NewPresenter 创建视图生成器
func NewPresenter(resolver *media.Resolver) *Presenter {
	return &Presenter{media: resolver}
}

// Service 服务视图
func (p *Presenter) Service(s *model.Service) any {
	return serviceView{Service: s, IconURL: p.media.FullURL(s.IconKey), ImageURL: p.media.FullURL(s.ImageKey)}
}

// Blog 博客视图
func (p *Presenter) Blog(b *model.Blog) any {
	return blogView{Blog: b, ImageURL: p.media.FullURL(b.ImageKey)}
}

// BlogDetail 博客详情视图
func (p *Presenter) BlogDetail(d *model.BlogDetail) any {
	return blogDetailView{BlogDetail: d, ImageURL: p.media.FullURL(d.ImageKey)}
}

// Client 客户视图
func (p *Presenter) Client(c *model.Client) any {
	return clientView{Client: c, LogoURL: p.media.FullURL(c.LogoKey)}
}

// ServicePage 服务完整页面视图
func (p *Presenter) ServicePage(page *service.ServicePage) any {
	return struct {
		Service any                    `json:"service"`
		Details []*model.ServiceDetail `json:"details"`
		FAQs    []*model.ServiceFAQ    `json:"faqs"`
	}{p.Service(page.Service), page.Details, page.FAQs}
}

// BlogPage 博客完整页面视图
func (p *Presenter) BlogPage(page *service.BlogPage) any {
	return struct {
		Blog    any              `json:"blog"`
		Details []any            `json:"details"`
		FAQs    []*model.BlogFAQ `json:"faqs"`
	}{p.Blog(page.Blog), presentAll(page.Details, p.BlogDetail), page.FAQs}
}

// asIs 不含图片的实体原样返回
func asIs[P any](entity P) any {
	return entity
}

func presentAll[P any](items []P, present func(P) any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = present(item)
	}
	return out
}
