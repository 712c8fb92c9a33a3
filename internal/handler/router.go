package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/config"
	"github.com/preetinest/cms-backend/internal/media"
	"github.com/preetinest/cms-backend/internal/middleware"
	"github.com/preetinest/cms-backend/internal/service"
	"github.com/preetinest/cms-backend/pkg/response"
	"github.com/redis/go-redis/v9"
)

// Services 路由依赖的全部服务
type Services struct {
	Category      service.CategoryService
	SubCategory   service.SubCategoryService
	Service       service.ServiceService
	ServiceDetail service.ServiceDetailService
	ServiceFAQ    service.ServiceFAQService
	Blog          service.BlogService
	BlogDetail    service.BlogDetailService
	BlogFAQ       service.BlogFAQService
	Client        service.ClientService
	User          service.UserService
	Role          service.RoleService
	Inquiry       service.InquiryService
	Page          service.PageService
	Auth          service.AuthService
	Token         service.TokenService
	Guard         service.AdminGuard
}

// RouterOptions 路由配置
type RouterOptions struct {
	Media       *media.Resolver
	Redis       *redis.Client
	RateLimit   config.RateLimitConfig
	MaxUploadMB int64
	Health      map[string]Checker
}

// NewRouter 创建路由
func NewRouter(svc *Services, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// 全局中间件
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", Health(opts.Health))

	present := NewPresenter(opts.Media)
	authHandler := NewAuthHandler(svc.Auth, svc.User, svc.Token)
	inquiryHandler := NewInquiryHandler(svc.Inquiry)
	pageHandler := NewPageHandler(svc.Page, present)
	uploadHandler := NewUploadHandler(opts.Media, opts.MaxUploadMB)

	auth := middleware.JWTAuth(svc.Token)
	admin := middleware.RequireAdmin(svc.Guard)

	api := router.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, "pong")
		})

		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", auth, authHandler.GetCurrentUser)

		api.GET("/menus", pageHandler.Menu)
		api.GET("/pages/services/:slug", pageHandler.ServicePage)
		api.GET("/pages/blogs/:slug", pageHandler.BlogPage)

		api.POST("/images/upload", auth, admin, uploadHandler.Upload)

		// 内容实体：读公开，写需要管理员
		content := func(path string, h interface {
			Register(read, write *gin.RouterGroup)
		}) {
			read := api.Group(path)
			write := api.Group(path, auth, admin)
			h.Register(read, write)
		}
		content("/categories", NewContentHandler(svc.Category, nil).WithSlug())
		content("/sub-categories", NewContentHandler(svc.SubCategory, nil).WithSlug().WithParent())
		content("/services", NewContentHandler(svc.Service, present.Service).WithSlug().WithParent())
		content("/service-details", NewContentHandler(svc.ServiceDetail, nil).WithParent())
		content("/service-faqs", NewContentHandler(svc.ServiceFAQ, nil).WithParent())
		content("/blogs", NewContentHandler(svc.Blog, present.Blog).WithSlug().WithParent())
		content("/blog-details", NewContentHandler(svc.BlogDetail, present.BlogDetail).WithParent())
		content("/blog-faqs", NewContentHandler(svc.BlogFAQ, nil).WithParent())
		content("/clients", NewContentHandler(svc.Client, present.Client).WithSlug())

		// 用户与角色只对管理员开放
		users := api.Group("/users", auth, admin)
		NewContentHandler(svc.User, nil).Register(users, users)
		roles := api.Group("/roles", auth, admin)
		NewContentHandler(svc.Role, nil).Register(roles, roles)

		// 咨询：提交公开并限流，其余需要管理员
		var limit int64
		if opts.RateLimit.Enabled {
			limit = opts.RateLimit.Limit
		}
		api.POST("/inquiries", middleware.OptionalJWTAuth(svc.Token), middleware.RateLimit(opts.Redis, "inquiry", limit, opts.RateLimit.Window), inquiryHandler.Create)
		inquiries := api.Group("/inquiries", auth, admin)
		{
			inquiries.GET("", inquiryHandler.List)
			inquiries.GET("/:id", inquiryHandler.Get)
			inquiries.GET("/uuid/:uuid", inquiryHandler.GetByUUID)
			inquiries.PUT("/:id", inquiryHandler.Update)
			inquiries.DELETE("/:id", inquiryHandler.Delete)
		}
	}

	return router
}
