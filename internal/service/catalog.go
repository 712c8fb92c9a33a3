package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
)

// 实体名称
const (
	kindCategory      = "分类"
	kindSubCategory   = "子分类"
	kindService       = "服务"
	kindServiceDetail = "服务详情"
	kindServiceFAQ    = "服务FAQ"
	kindBlog          = "博客"
	kindBlogDetail    = "博客详情"
	kindBlogFAQ       = "博客FAQ"
	kindClient        = "客户"
	kindInquiry       = "咨询"
	kindUser          = "用户"
	kindRole          = "角色"
)

// 与表结构一致的文本长度上限（按字符计）
const (
	MaxSlugLength     = 100
	maxShortLength    = 100
	maxNameLength     = 255
	maxQuestionLength = 1000
	maxPhoneLength    = 50
	maxKeywordLength  = 500
)

// 各内容实体服务
type (
	CategoryService      = ContentService[model.Category, *model.Category, CategoryRequest]
	SubCategoryService   = ContentService[model.SubCategory, *model.SubCategory, SubCategoryRequest]
	ServiceService       = ContentService[model.Service, *model.Service, ServiceRequest]
	ServiceDetailService = ContentService[model.ServiceDetail, *model.ServiceDetail, ServiceDetailRequest]
	ServiceFAQService    = ContentService[model.ServiceFAQ, *model.ServiceFAQ, ServiceFAQRequest]
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	model.SEOMeta
	StatusInput
}

// SubCategoryRequest 子分类请求
type SubCategoryRequest struct {
	CategoryID  uint64 `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	model.SEOMeta
	StatusInput
}

// ServiceRequest 服务请求
type ServiceRequest struct {
	SubCategoryID uint64     `json:"sub_category_id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Icon          MediaInput `json:"icon"`
	Image         MediaInput `json:"image"`
	Slug          string     `json:"slug"`
	ShowOnHome    bool       `json:"show_on_home"`
	model.SEOMeta
	StatusInput
}

// ServiceDetailRequest 服务详情请求
type ServiceDetailRequest struct {
	ServiceID    uint64 `json:"service_id"`
	Heading      string `json:"heading"`
	Details      string `json:"details"`
	DisplayOrder int    `json:"display_order"`
	StatusInput
}

// ServiceFAQRequest 服务 FAQ 请求
type ServiceFAQRequest struct {
	ServiceID    uint64 `json:"service_id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder int    `json:"display_order"`
	StatusInput
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, deps Deps) CategoryService {
	return NewContentService(Descriptor[model.Category, *model.Category, CategoryRequest]{
		Kind:   kindCategory,
		Unique: slugOf(func(r CategoryRequest) string { return r.Slug }),
		Validate: func(r CategoryRequest, _ bool) error {
			return firstErr(requiredText("name", r.Name, maxNameLength), validateSEO(r.SEOMeta))
		},
		Apply: func(e *model.Category, r CategoryRequest) error {
			e.Name = r.Name
			e.Description = r.Description
			e.Slug = cleanSlug(r.Slug)
			e.SEOMeta = r.SEOMeta
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
	}, repo, deps)
}

// NewSubCategoryService 创建子分类服务，所属分类只要求未删除
func NewSubCategoryService(repo repository.SubCategoryRepository, categories repository.CategoryRepository, deps Deps) SubCategoryService {
	return NewContentService(Descriptor[model.SubCategory, *model.SubCategory, SubCategoryRequest]{
		Kind:         kindSubCategory,
		Unique:       slugOf(func(r SubCategoryRequest) string { return r.Slug }),
		ParentColumn: "category_id",
		Validate: func(r SubCategoryRequest, _ bool) error {
			return firstErr(requiredText("name", r.Name, maxNameLength), validateSEO(r.SEOMeta))
		},
		References: []Reference[SubCategoryRequest]{
			Refer[SubCategoryRequest, model.Category](kindCategory, model.VisibilityUsable, categories,
				func(r SubCategoryRequest) (uint64, bool) { return r.CategoryID, true }),
		},
		Apply: func(e *model.SubCategory, r SubCategoryRequest) error {
			e.CategoryID = r.CategoryID
			e.Name = r.Name
			e.Description = r.Description
			e.Slug = cleanSlug(r.Slug)
			e.SEOMeta = r.SEOMeta
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
	}, repo, deps)
}

// NewServiceService 创建服务实体的服务，所属子分类只要求未删除
func NewServiceService(repo repository.ServiceRepository, subCategories repository.SubCategoryRepository, deps Deps) ServiceService {
	return NewContentService(Descriptor[model.Service, *model.Service, ServiceRequest]{
		Kind:         kindService,
		Unique:       slugOf(func(r ServiceRequest) string { return r.Slug }),
		ParentColumn: "sub_category_id",
		Validate: func(r ServiceRequest, _ bool) error {
			return firstErr(requiredText("name", r.Name, maxNameLength), validateSEO(r.SEOMeta))
		},
		References: []Reference[ServiceRequest]{
			Refer[ServiceRequest, model.SubCategory](kindSubCategory, model.VisibilityUsable, subCategories,
				func(r ServiceRequest) (uint64, bool) { return r.SubCategoryID, true }),
		},
		Media: []MediaBinding[ServiceRequest, *model.Service]{
			{
				Field:  "icon",
				Input:  func(r ServiceRequest) MediaInput { return r.Icon },
				Target: func(e *model.Service) *string { return &e.IconKey },
			},
			{
				Field:  "image",
				Input:  func(r ServiceRequest) MediaInput { return r.Image },
				Target: func(e *model.Service) *string { return &e.ImageKey },
			},
		},
		Apply: func(e *model.Service, r ServiceRequest) error {
			e.SubCategoryID = r.SubCategoryID
			e.Name = r.Name
			e.Description = r.Description
			e.Slug = cleanSlug(r.Slug)
			e.ShowOnHome = r.ShowOnHome
			e.SEOMeta = r.SEOMeta
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
		OnChange: deps.OnMenuChange,
	}, repo, deps)
}

// NewServiceDetailService 创建服务详情服务，所属服务必须可见
func NewServiceDetailService(repo repository.ServiceDetailRepository, services repository.ServiceRepository, deps Deps) ServiceDetailService {
	return NewContentService(Descriptor[model.ServiceDetail, *model.ServiceDetail, ServiceDetailRequest]{
		Kind:         kindServiceDetail,
		ParentColumn: "service_id",
		Validate: func(r ServiceDetailRequest, _ bool) error {
			return requiredText("heading", r.Heading, maxNameLength)
		},
		References: []Reference[ServiceDetailRequest]{
			Refer[ServiceDetailRequest, model.Service](kindService, model.VisibilityVisible, services,
				func(r ServiceDetailRequest) (uint64, bool) { return r.ServiceID, true }),
		},
		Apply: func(e *model.ServiceDetail, r ServiceDetailRequest) error {
			e.ServiceID = r.ServiceID
			e.Heading = r.Heading
			e.Details = r.Details
			e.DisplayOrder = r.DisplayOrder
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
	}, repo, deps)
}

// NewServiceFAQService 创建服务 FAQ 服务，所属服务必须可见
func NewServiceFAQService(repo repository.ServiceFAQRepository, services repository.ServiceRepository, deps Deps) ServiceFAQService {
	return NewContentService(Descriptor[model.ServiceFAQ, *model.ServiceFAQ, ServiceFAQRequest]{
		Kind:         kindServiceFAQ,
		ParentColumn: "service_id",
		Validate: func(r ServiceFAQRequest, _ bool) error {
			return requiredText("question", r.Question, maxQuestionLength)
		},
		References: []Reference[ServiceFAQRequest]{
			Refer[ServiceFAQRequest, model.Service](kindService, model.VisibilityVisible, services,
				func(r ServiceFAQRequest) (uint64, bool) { return r.ServiceID, true }),
		},
		Apply: func(e *model.ServiceFAQ, r ServiceFAQRequest) error {
			e.ServiceID = r.ServiceID
			e.Question = r.Question
			e.Answer = r.Answer
			e.DisplayOrder = r.DisplayOrder
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
	}, repo, deps)
}

func slugOf[R any](get func(R) string) *UniqueField[R] {
	return &UniqueField[R]{
		Column:    slugColumn,
		Value:     func(r R) string { return cleanSlug(get(r)) },
		MaxLength: MaxSlugLength,
	}
}

// cleanSlug 去掉首尾空白，保留大小写
func cleanSlug(slug string) string {
	return strings.TrimSpace(slug)
}

func notBlank(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s 不能为空", field)
	}
	return nil
}

// maxLength 按字符数限制长度，与 varchar(n) 语义一致
func maxLength(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Errorf("%s 长度 %d 超过上限 %d", field, n, limit)
	}
	return nil
}

func requiredText(field, value string, limit int) error {
	if err := notBlank(field, value); err != nil {
		return err
	}
	return maxLength(field, value, limit)
}

func validateSEO(m model.SEOMeta) error {
	return firstErr(
		maxLength("meta_title", m.MetaTitle, maxNameLength),
		maxLength("meta_keyword", m.MetaKeyword, maxKeywordLength),
		maxLength("meta_description", m.MetaDescription, maxQuestionLength),
	)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// truncate 截断到 limit 个字符
func truncate(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	return string([]rune(value)[:limit])
}

// optionalID 可选外键，nil 或 0 表示未引用
func optionalID(id *uint64) (uint64, bool) {
	if id == nil || *id == 0 {
		return 0, false
	}
	return *id, true
}
