package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/preetinest/cms-backend/internal/cache"
	"github.com/preetinest/cms-backend/internal/media"
	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
	"github.com/preetinest/cms-backend/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testMediaBaseURL = "https://cdn.example.com/cms"

// 最小的 PNG 文件头，足够被识别为 image/png
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

func boolPtr(v bool) *bool { return &v }

// fixture 基于内存实现组装的完整服务集合
type fixture struct {
	ctx context.Context

	users         repository.UserRepository
	roles         repository.RoleRepository
	categories    repository.CategoryRepository
	subCategories repository.SubCategoryRepository
	services      repository.ServiceRepository
	blogs         repository.BlogRepository
	clients       repository.ClientRepository
	inquiries     repository.InquiryRepository

	store       *storage.MemoryStore
	media       *media.Resolver
	redis       *miniredis.Miniredis
	menuCache   *cache.JSONCache
	menuChanges int

	admin  *model.User
	editor *model.User

	Category      CategoryService
	SubCategory   SubCategoryService
	Service       ServiceService
	ServiceDetail ServiceDetailService
	ServiceFAQ    ServiceFAQService
	Blog          BlogService
	BlogDetail    BlogDetailService
	BlogFAQ       BlogFAQService
	Client        ClientService
	User          UserService
	Role          RoleService
	Inquiry       InquiryService
	Resolver      SlugResolver
	Page          PageService
	Auth          AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:           context.Background(),
		users:         repository.NewMemoryUserRepository(),
		roles:         repository.NewMemoryRoleRepository(),
		categories:    repository.NewMemoryRepository[model.Category](),
		subCategories: repository.NewMemoryRepository[model.SubCategory](),
		services:      repository.NewMemoryRepository[model.Service](),
		blogs:         repository.NewMemoryRepository[model.Blog](),
		clients:       repository.NewMemoryRepository[model.Client](),
		inquiries:     repository.NewMemoryRepository[model.Inquiry](),
		store:         storage.NewMemoryStore(),
		redis:         miniredis.RunT(t),
	}
	f.media = media.NewResolver(f.store, testMediaBaseURL)

	client := redis.NewClient(&redis.Options{Addr: f.redis.Addr()})
	t.Cleanup(func() { client.Close() })
	f.menuCache = cache.NewJSONCache(client, MenuCacheKey, time.Minute)
	invalidate := MenuInvalidator(f.menuCache, zap.NewNop())

	f.admin = f.seedUser(t, "admin@example.com", model.RoleAdmin)
	f.editor = f.seedUser(t, "editor@example.com", "EDITOR")

	deps := Deps{
		Guard:  NewAdminGuard(f.users, f.roles),
		Media:  f.media,
		Logger: zap.NewNop(),
		OnMenuChange: func(ctx context.Context) {
			f.menuChanges++
			invalidate(ctx)
		},
	}

	f.Category = NewCategoryService(f.categories, deps)
	f.SubCategory = NewSubCategoryService(f.subCategories, f.categories, deps)
	f.Service = NewServiceService(f.services, f.subCategories, deps)
	f.ServiceDetail = NewServiceDetailService(repository.NewMemoryRepository[model.ServiceDetail](), f.services, deps)
	f.ServiceFAQ = NewServiceFAQService(repository.NewMemoryRepository[model.ServiceFAQ](), f.services, deps)
	f.Blog = NewBlogService(f.blogs, BlogRefs{Categories: f.categories, SubCategories: f.subCategories, Services: f.services}, deps)
	f.BlogDetail = NewBlogDetailService(repository.NewMemoryRepository[model.BlogDetail](), f.blogs, deps)
	f.BlogFAQ = NewBlogFAQService(repository.NewMemoryRepository[model.BlogFAQ](), f.blogs, deps)
	f.Client = NewClientService(f.clients, deps)
	f.User = NewUserService(f.users, f.roles, deps)
	f.Role = NewRoleService(f.roles, deps)
	f.Resolver = NewSlugResolver(f.Service, f.Blog, f.Client)
	f.Inquiry = NewInquiryService(f.inquiries, f.Resolver, deps)
	f.Page = NewPageService(PageServices{
		Services:       f.Service,
		ServiceDetails: f.ServiceDetail,
		ServiceFAQs:    f.ServiceFAQ,
		Blogs:          f.Blog,
		BlogDetails:    f.BlogDetail,
		BlogFAQs:       f.BlogFAQ,
		Clients:        f.Client,
	}, f.menuCache, zap.NewNop())
	f.Auth = NewAuthService(f.users, f.roles, zap.NewNop())
	return f
}

// seedUser 直接写入启用的用户和角色，绕过管理员校验
func (f *fixture) seedUser(t *testing.T, email, roleName string) *model.User {
	t.Helper()

	role, err := f.roles.GetByName(f.ctx, roleName)
	if err != nil {
		role = &model.Role{Name: roleName}
		role.Activate()
		require.NoError(t, f.roles.Create(f.ctx, role))
	}

	user := &model.User{Name: email, Email: email, RoleID: role.ID}
	user.Activate()
	require.NoError(t, user.SetPassword("Passw0rd!"))
	require.NoError(t, f.users.Create(f.ctx, user))
	return user
}

// seedCatalog 创建分类 travel、子分类 air 和服务 flights
func (f *fixture) seedCatalog(t *testing.T) (*model.Category, *model.SubCategory, *model.Service) {
	t.Helper()

	category, err := f.Category.Create(f.ctx, CategoryRequest{Name: "Travel", Slug: "travel"}, f.admin.ID)
	require.NoError(t, err)
	sub, err := f.SubCategory.Create(f.ctx, SubCategoryRequest{CategoryID: category.ID, Name: "Air", Slug: "air"}, f.admin.ID)
	require.NoError(t, err)
	service, err := f.Service.Create(f.ctx, ServiceRequest{SubCategoryID: sub.ID, Name: "Flight Booking", Slug: "flights"}, f.admin.ID)
	require.NoError(t, err)
	return category, sub, service
}
