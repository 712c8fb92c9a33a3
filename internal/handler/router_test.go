package handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/cache"
	"github.com/preetinest/cms-backend/internal/config"
	"github.com/preetinest/cms-backend/internal/media"
	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
	"github.com/preetinest/cms-backend/internal/service"
	"github.com/preetinest/cms-backend/internal/storage"
	"github.com/preetinest/cms-backend/pkg/response"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://cdn.example.com"

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type testEnv struct {
	router *gin.Engine
	store  *storage.MemoryStore
	admin  string
	editor string
}

// envelope 响应结构，data 延迟解析
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setupTestRouter(t *testing.T, rateLimit int64) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	users := repository.NewMemoryUserRepository()
	roles := repository.NewMemoryRoleRepository()
	categories := repository.NewMemoryRepository[model.Category]()
	subCategories := repository.NewMemoryRepository[model.SubCategory]()
	services := repository.NewMemoryRepository[model.Service]()
	blogs := repository.NewMemoryRepository[model.Blog]()

	seed := func(email, roleName string) {
		role, err := roles.GetByName(ctx, roleName)
		if err != nil {
			role = &model.Role{Name: roleName}
			role.Activate()
			require.NoError(t, roles.Create(ctx, role))
		}
		user := &model.User{Name: email, Email: email, RoleID: role.ID}
		user.Activate()
		require.NoError(t, user.SetPassword("Passw0rd!"))
		require.NoError(t, users.Create(ctx, user))
	}
	seed("admin@example.com", model.RoleAdmin)
	seed("editor@example.com", "EDITOR")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	menuCache := cache.NewJSONCache(client, service.MenuCacheKey, time.Minute)

	store := storage.NewMemoryStore()
	resolver := media.NewResolver(store, testBaseURL)
	guard := service.NewAdminGuard(users, roles)
	deps := service.Deps{Guard: guard, Media: resolver, OnMenuChange: service.MenuInvalidator(menuCache, nil)}

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	svc := &Services{
		Category:      service.NewCategoryService(categories, deps),
		SubCategory:   service.NewSubCategoryService(subCategories, categories, deps),
		Service:       service.NewServiceService(services, subCategories, deps),
		ServiceDetail: service.NewServiceDetailService(repository.NewMemoryRepository[model.ServiceDetail](), services, deps),
		ServiceFAQ:    service.NewServiceFAQService(repository.NewMemoryRepository[model.ServiceFAQ](), services, deps),
		Blog:          service.NewBlogService(blogs, service.BlogRefs{Categories: categories, SubCategories: subCategories, Services: services}, deps),
		BlogDetail:    service.NewBlogDetailService(repository.NewMemoryRepository[model.BlogDetail](), blogs, deps),
		BlogFAQ:       service.NewBlogFAQService(repository.NewMemoryRepository[model.BlogFAQ](), blogs, deps),
		Client:        service.NewClientService(repository.NewMemoryRepository[model.Client](), deps),
		User:          service.NewUserService(users, roles, deps),
		Role:          service.NewRoleService(roles, deps),
		Auth:          service.NewAuthService(users, roles, nil),
		Token:         service.NewTokenService(&service.TokenServiceConfig{PrivateKey: key, KeyID: "test", Issuer: "cms-test", AccessExpiry: time.Hour}),
		Guard:         guard,
	}
	svc.Inquiry = service.NewInquiryService(repository.NewMemoryRepository[model.Inquiry](), service.NewSlugResolver(svc.Service, svc.Blog, svc.Client), deps)
	svc.Page = service.NewPageService(service.PageServices{
		Services:       svc.Service,
		ServiceDetails: svc.ServiceDetail,
		ServiceFAQs:    svc.ServiceFAQ,
		Blogs:          svc.Blog,
		BlogDetails:    svc.BlogDetail,
		BlogFAQs:       svc.BlogFAQ,
		Clients:        svc.Client,
	}, menuCache, nil)

	env := &testEnv{
		router: NewRouter(svc, RouterOptions{
			Media:       resolver,
			Redis:       client,
			RateLimit:   config.RateLimitConfig{Enabled: rateLimit > 0, Limit: rateLimit, Window: time.Minute},
			MaxUploadMB: 1,
		}),
		store: store,
	}
	env.admin = env.login(t, "admin@example.com")
	env.editor = env.login(t, "editor@example.com")
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	w, resp := e.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: email, Password: "Passw0rd!"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var token TokenResponse
	require.NoError(t, json.Unmarshal(resp.Data, &token))
	return token.AccessToken
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// TestRouter_Login 测试登录
func TestRouter_Login(t *testing.T) {
	env := setupTestRouter(t, 0)

	w, resp := env.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.CodeInvalidCredentials, resp.Code)

	w, resp = env.do(t, http.MethodGet, "/api/v1/auth/me", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]any](t, resp.Data)
	assert.Equal(t, "admin@example.com", me["email"])
	assert.NotContains(t, me, "password_hash")
}

// TestRouter_ContentLifecycle 测试内容实体的增删改查
func TestRouter_ContentLifecycle(t *testing.T) {
	env := setupTestRouter(t, 0)

	// 未登录与非管理员
	w, _ := env.do(t, http.MethodPost, "/api/v1/categories", "", service.CategoryRequest{Name: "Travel", Slug: "travel"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = env.do(t, http.MethodPost, "/api/v1/categories", env.editor, service.CategoryRequest{Name: "Travel", Slug: "travel"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp := env.do(t, http.MethodPost, "/api/v1/categories", env.admin, service.CategoryRequest{Name: "Travel", Slug: "travel"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	category := decode[model.Category](t, resp.Data)
	assert.NotZero(t, category.ID)
	assert.True(t, category.Active)

	// 重复 slug
	w, resp = env.do(t, http.MethodPost, "/api/v1/categories", env.admin, service.CategoryRequest{Name: "Again", Slug: "travel"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, response.CodeConflict, resp.Code)

	w, resp = env.do(t, http.MethodGet, "/api/v1/categories/slug/travel", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, category.ID, decode[model.Category](t, resp.Data).ID)

	w, _ = env.do(t, http.MethodGet, "/api/v1/categories/uuid/"+category.UUID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = env.do(t, http.MethodPut, "/api/v1/categories/1", env.admin, service.CategoryRequest{Name: "Travel & Tours", Slug: "travel"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Travel & Tours", decode[model.Category](t, resp.Data).Name)

	w, _ = env.do(t, http.MethodDelete, "/api/v1/categories/1", env.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = env.do(t, http.MethodGet, "/api/v1/categories/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.CodeNotFound, resp.Code)

	w, resp = env.do(t, http.MethodGet, "/api/v1/categories/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeInvalidFormat, resp.Code)

	w, resp = env.do(t, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]model.Category](t, resp.Data))
}

// TestRouter_ServiceMediaAndInquiry 测试图片 URL 计算和咨询流程
func TestRouter_ServiceMediaAndInquiry(t *testing.T) {
	env := setupTestRouter(t, 0)

	_, resp := env.do(t, http.MethodPost, "/api/v1/categories", env.admin, service.CategoryRequest{Name: "Travel", Slug: "travel"})
	category := decode[model.Category](t, resp.Data)
	_, resp = env.do(t, http.MethodPost, "/api/v1/sub-categories", env.admin, service.SubCategoryRequest{CategoryID: category.ID, Name: "Air", Slug: "air"})
	sub := decode[model.SubCategory](t, resp.Data)

	w, resp := env.do(t, http.MethodPost, "/api/v1/services", env.admin, map[string]any{
		"sub_category_id": sub.ID,
		"name":            "Flight Booking",
		"slug":            "flights",
		"icon":            map[string]string{"key": "icons/plane.svg"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode[map[string]any](t, resp.Data)
	assert.Equal(t, "icons/plane.svg", view["icon_key"])
	assert.Equal(t, testBaseURL+"/icons/plane.svg", view["icon_url"])
	assert.Equal(t, "", view["image_url"])

	w, resp = env.do(t, http.MethodGet, "/api/v1/pages/services/flights", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[map[string]any](t, resp.Data)
	assert.Equal(t, testBaseURL+"/icons/plane.svg", page["service"].(map[string]any)["icon_url"])

	w, resp = env.do(t, http.MethodGet, "/api/v1/menus", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	menu := decode[service.Menu](t, resp.Data)
	require.Len(t, menu.Services, 1)

	// 匿名提交咨询
	w, resp = env.do(t, http.MethodPost, "/api/v1/inquiries", "", service.InquiryRequest{Name: "Alice", Email: "alice@example.com", Slug: "flights"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	inquiry := decode[model.Inquiry](t, resp.Data)
	assert.Equal(t, model.PageTypeService, inquiry.PageType)
	assert.Equal(t, "Flight Booking", inquiry.PageName)

	w, _ = env.do(t, http.MethodGet, "/api/v1/inquiries", env.editor, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = env.do(t, http.MethodGet, "/api/v1/inquiries?page=0&size=10", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[service.PageResult[model.Inquiry]](t, resp.Data)
	assert.Equal(t, int64(1), result.TotalItems)
	assert.Equal(t, 10, result.PageSize)

	w, resp = env.do(t, http.MethodGet, "/api/v1/inquiries?page=-1", env.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeInvalidRequest, resp.Code)
}

// TestRouter_InquiryRateLimit 测试咨询提交限流
func TestRouter_InquiryRateLimit(t *testing.T) {
	env := setupTestRouter(t, 2)

	req := service.InquiryRequest{Name: "Alice", Email: "alice@example.com"}
	for i := 0; i < 2; i++ {
		w, _ := env.do(t, http.MethodPost, "/api/v1/inquiries", "", req)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, resp := env.do(t, http.MethodPost, "/api/v1/inquiries", "", req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, response.CodeTooManyReq, resp.Code)
}

// TestRouter_InquiryOptionalAuth 咨询提交接受管理员令牌，无效令牌按匿名处理
func TestRouter_InquiryOptionalAuth(t *testing.T) {
	env := setupTestRouter(t, 0)

	req := service.InquiryRequest{Name: "Alice", Email: "alice@example.com"}
	for _, token := range []string{"", env.admin, "broken"} {
		w, resp := env.do(t, http.MethodPost, "/api/v1/inquiries", token, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, model.PageTypeGeneral, decode[model.Inquiry](t, resp.Data).PageType)
	}
}

// TestRouter_Upload 测试图片上传
func TestRouter_Upload(t *testing.T) {
	env := setupTestRouter(t, 0)

	upload := func(token, fileName string, data []byte) (*httptest.ResponseRecorder, envelope) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/images/upload", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		var resp envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w, resp
	}

	w, resp := upload(env.admin, "Logo Final.png", pngBytes)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode[map[string]string](t, resp.Data)
	assert.True(t, strings.HasSuffix(data["key"], ".png"))
	assert.Equal(t, testBaseURL+"/"+data["key"], data["url"])
	assert.Equal(t, 1, env.store.Len())

	w, _ = upload(env.editor, "logo.png", pngBytes)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = upload(env.admin, `..\\escape.png`, pngBytes)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeInvalidRequest, resp.Code)

	w, resp = upload(env.admin, "big.png", make([]byte, 2<<20))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeFileTooLarge, resp.Code)
}

// TestRouter_Health 测试健康检查
func TestRouter_Health(t *testing.T) {
	env := setupTestRouter(t, 0)

	w, resp := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, resp.Data)["status"])
}
