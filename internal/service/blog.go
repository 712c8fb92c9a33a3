package service

import (
	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
)

// 博客与客户相关服务
type (
	BlogService       = ContentService[model.Blog, *model.Blog, BlogRequest]
	BlogDetailService = ContentService[model.BlogDetail, *model.BlogDetail, BlogDetailRequest]
	BlogFAQService    = ContentService[model.BlogFAQ, *model.BlogFAQ, BlogFAQRequest]
	ClientService     = ContentService[model.Client, *model.Client, ClientRequest]
)

// BlogRequest 博客请求
type BlogRequest struct {
	CategoryID    uint64     `json:"category_id"`
	SubCategoryID *uint64    `json:"sub_category_id"`
	ServiceID     *uint64    `json:"service_id"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt"`
	Image         MediaInput `json:"image"`
	Slug          string     `json:"slug"`
	ShowOnHome    bool       `json:"show_on_home"`
	model.SEOMeta
	StatusInput
}

// BlogDetailRequest 博客详情请求
type BlogDetailRequest struct {
	BlogID       uint64     `json:"blog_id"`
	Heading      string     `json:"heading"`
	Content      string     `json:"content"`
	Image        MediaInput `json:"image"`
	DisplayOrder int        `json:"display_order"`
	StatusInput
}

// BlogFAQRequest 博客 FAQ 请求
type BlogFAQRequest struct {
	BlogID       uint64 `json:"blog_id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder int    `json:"display_order"`
	StatusInput
}

// ClientRequest 客户请求
type ClientRequest struct {
	Name         string     `json:"name"`
	ClientType   string     `json:"client_type"`
	Description  string     `json:"description"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone"`
	Logo         MediaInput `json:"logo"`
	Slug         string     `json:"slug"`
	ShowOnHome   bool       `json:"show_on_home"`
	model.SEOMeta
	StatusInput
}

// BlogRefs 博客引用的数据访问接口
type BlogRefs struct {
	Categories    repository.CategoryRepository
	SubCategories repository.SubCategoryRepository
	Services      repository.ServiceRepository
}

// NewBlogService 创建博客服务
// 分类必须未删除且已启用；可选的子分类和服务必须可见
func NewBlogService(repo repository.BlogRepository, refs BlogRefs, deps Deps) BlogService {
	return NewContentService(Descriptor[model.Blog, *model.Blog, BlogRequest]{
		Kind:         kindBlog,
		Unique:       slugOf(func(r BlogRequest) string { return r.Slug }),
		ParentColumn: "service_id",
		Validate: func(r BlogRequest, _ bool) error {
			return firstErr(requiredText("title", r.Title, maxNameLength), validateSEO(r.SEOMeta))
		},
		References: []Reference[BlogRequest]{
			Refer[BlogRequest, model.Category](kindCategory, model.VisibilityEnabled, refs.Categories,
				func(r BlogRequest) (uint64, bool) { return r.CategoryID, true }),
			Refer[BlogRequest, model.SubCategory](kindSubCategory, model.VisibilityVisible, refs.SubCategories,
				func(r BlogRequest) (uint64, bool) { return optionalID(r.SubCategoryID) }),
			Refer[BlogRequest, model.Service](kindService, model.VisibilityVisible, refs.Services,
				func(r BlogRequest) (uint64, bool) { return optionalID(r.ServiceID) }),
		},
		Media: []MediaBinding[BlogRequest, *model.Blog]{
			{
				Field:  "image",
				Input:  func(r BlogRequest) MediaInput { return r.Image },
				Target: func(e *model.Blog) *string { return &e.ImageKey },
			},
		},
		Apply: func(e *model.Blog, r BlogRequest) error {
			e.CategoryID = r.CategoryID
			e.SubCategoryID = nil
			if id, ok := optionalID(r.SubCategoryID); ok {
				e.SubCategoryID = &id
			}
			e.ServiceID = nil
			if id, ok := optionalID(r.ServiceID); ok {
				e.ServiceID = &id
			}
			e.Title = r.Title
			e.Excerpt = r.Excerpt
			e.Slug = cleanSlug(r.Slug)
			e.ShowOnHome = r.ShowOnHome
			e.SEOMeta = r.SEOMeta
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
		OnChange: deps.OnMenuChange,
	}, repo, deps)
}

// NewBlogDetailService 创建博客详情服务，所属博客必须可见
func NewBlogDetailService(repo repository.BlogDetailRepository, blogs repository.BlogRepository, deps Deps) BlogDetailService {
	return NewContentService(Descriptor[model.BlogDetail, *model.BlogDetail, BlogDetailRequest]{
		Kind:         kindBlogDetail,
		ParentColumn: "blog_id",
		Validate: func(r BlogDetailRequest, _ bool) error {
			return requiredText("heading", r.Heading, maxNameLength)
		},
		References: []Reference[BlogDetailRequest]{
			Refer[BlogDetailRequest, model.Blog](kindBlog, model.VisibilityVisible, blogs,
				func(r BlogDetailRequest) (uint64, bool) { return r.BlogID, true }),
		},
		Media: []MediaBinding[BlogDetailRequest, *model.BlogDetail]{
			{
				Field:  "image",
				Input:  func(r BlogDetailRequest) MediaInput { return r.Image },
				Target: func(e *model.BlogDetail) *string { return &e.ImageKey },
			},
		},
		Apply: func(e *model.BlogDetail, r BlogDetailRequest) error {
			e.BlogID = r.BlogID
			e.Heading = r.Heading
			e.Content = r.Content
			e.DisplayOrder = r.DisplayOrder
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
	}, repo, deps)
}

// NewBlogFAQService 创建博客 FAQ 服务，所属博客必须可见
func NewBlogFAQService(repo repository.BlogFAQRepository, blogs repository.BlogRepository, deps Deps) BlogFAQService {
	return NewContentService(Descriptor[model.BlogFAQ, *model.BlogFAQ, BlogFAQRequest]{
		Kind:         kindBlogFAQ,
		ParentColumn: "blog_id",
		Validate: func(r BlogFAQRequest, _ bool) error {
			return requiredText("question", r.Question, maxQuestionLength)
		},
		References: []Reference[BlogFAQRequest]{
			Refer[BlogFAQRequest, model.Blog](kindBlog, model.VisibilityVisible, blogs,
				func(r BlogFAQRequest) (uint64, bool) { return r.BlogID, true }),
		},
		Apply: func(e *model.BlogFAQ, r BlogFAQRequest) error {
			e.BlogID = r.BlogID
			e.Question = r.Question
			e.Answer = r.Answer
			e.DisplayOrder = r.DisplayOrder
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
	}, repo, deps)
}

// NewClientService 创建客户服务
func NewClientService(repo repository.ClientRepository, deps Deps) ClientService {
	return NewContentService(Descriptor[model.Client, *model.Client, ClientRequest]{
		Kind:   kindClient,
		Unique: slugOf(func(r ClientRequest) string { return r.Slug }),
		Validate: func(r ClientRequest, _ bool) error {
			return firstErr(
				requiredText("name", r.Name, maxNameLength),
				maxLength("client_type", r.ClientType, maxShortLength),
				maxLength("contact_email", r.ContactEmail, maxNameLength),
				maxLength("contact_phone", r.ContactPhone, maxPhoneLength),
				validateSEO(r.SEOMeta),
			)
		},
		Media: []MediaBinding[ClientRequest, *model.Client]{
			{
				Field:  "logo",
				Input:  func(r ClientRequest) MediaInput { return r.Logo },
				Target: func(e *model.Client) *string { return &e.LogoKey },
			},
		},
		Apply: func(e *model.Client, r ClientRequest) error {
			e.Name = r.Name
			e.ClientType = r.ClientType
			e.Description = r.Description
			e.ContactEmail = r.ContactEmail
			e.ContactPhone = r.ContactPhone
			e.Slug = cleanSlug(r.Slug)
			e.ShowOnHome = r.ShowOnHome
			e.SEOMeta = r.SEOMeta
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
		OnChange: deps.OnMenuChange,
	}, repo, deps)
}
