package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
	"github.com/preetinest/cms-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return service.NewTokenService(&service.TokenServiceConfig{
		PrivateKey:   key,
		KeyID:        "test",
		Issuer:       "cms-test",
		AccessExpiry: time.Minute,
	})
}

// TestJWTAuth 测试 JWT 认证中间件
func TestJWTAuth(t *testing.T) {
	tokens := newTestTokenService(t)
	token, err := tokens.GenerateAccessToken(context.Background(), &service.TokenClaims{UserID: 42, Email: "a@example.com", Role: model.RoleAdmin})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/me", JWTAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "role": c.GetString(ContextRole)})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "有效令牌", header: "Bearer " + token, want: http.StatusOK},
		{name: "缺少令牌", header: "", want: http.StatusUnauthorized},
		{name: "前缀错误", header: "Token " + token, want: http.StatusUnauthorized},
		{name: "无效令牌", header: "Bearer abc.def.ghi", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"user_id":42,"role":"ADMIN"}`, w.Body.String())
			}
		})
	}
}

// TestOptionalJWTAuth 测试可选认证不拦截匿名请求
func TestOptionalJWTAuth(t *testing.T) {
	tokens := newTestTokenService(t)

	router := gin.New()
	router.GET("/public", OptionalJWTAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0}`, w.Body.String())

	token, err := tokens.GenerateAccessToken(context.Background(), &service.TokenClaims{UserID: 42, Email: "a@example.com", Role: model.RoleAdmin})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42}`, w.Body.String())
}

// TestRequireAdmin 测试管理员检查按数据库中的角色判断
func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()
	roles := repository.NewMemoryRoleRepository()

	seed := func(email, roleName string) uint64 {
		role := &model.Role{Name: roleName}
		role.Activate()
		require.NoError(t, roles.Create(ctx, role))
		user := &model.User{Name: email, Email: email, RoleID: role.ID}
		user.Activate()
		require.NoError(t, users.Create(ctx, user))
		return user.ID
	}
	adminID := seed("admin@example.com", model.RoleAdmin)
	editorID := seed("editor@example.com", "EDITOR")

	tokens := newTestTokenService(t)
	router := gin.New()
	router.GET("/admin", JWTAuth(tokens), RequireAdmin(service.NewAdminGuard(users, roles)), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		userID uint64
		want   int
	}{
		{name: "管理员", userID: adminID, want: http.StatusNoContent},
		{name: "普通用户", userID: editorID, want: http.StatusForbidden},
		{name: "用户不存在", userID: 999, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 令牌中的角色不作为依据
			token, err := tokens.GenerateAccessToken(ctx, &service.TokenClaims{UserID: tt.userID, Role: model.RoleAdmin})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
