package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/preetinest/cms-backend/internal/middleware"
	"github.com/preetinest/cms-backend/internal/service"
	"github.com/preetinest/cms-backend/pkg/response"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService  service.AuthService
	userService  service.UserService
	tokenService service.TokenService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService, tokenSvc service.TokenService) *AuthHandler {
	return &AuthHandler{
		authService:  authSvc,
		userService:  userSvc,
		tokenService: tokenSvc,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 令牌响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      uint64 `json:"user_id"`
	Role        string `json:"role,omitempty"`
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.AuthenticateByEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, response.CodeInvalidCredentials)
		case errors.Is(err, service.ErrAccountDisabled):
			response.Error(c, response.CodeAccountDisabled)
		default:
			respondError(c, err)
		}
		return
	}

	// 生成令牌
	claims := &service.TokenClaims{UserID: user.ID, Email: user.Email}
	if user.Role != nil {
		claims.Role = user.Role.Name
	}
	accessToken, err := h.tokenService.GenerateAccessToken(c.Request.Context(), claims)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.tokenService.AccessExpiry().Seconds()),
		UserID:      user.ID,
		Role:        claims.Role,
	})
}

// GetCurrentUser 获取当前用户
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.userService.FindByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		notFound(c, "用户")
		return
	}
	response.Success(c, user)
}
