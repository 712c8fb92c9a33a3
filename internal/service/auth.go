package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
	"go.uber.org/zap"
)

// 认证相关错误
var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAccountDisabled    = errors.New("账户已禁用")
)

// AuthService 认证服务接口
type AuthService interface {
	// AuthenticateByEmail 通过邮箱验证用户凭据，成功时返回的用户带有已启用的角色
	AuthenticateByEmail(ctx context.Context, email, password string) (*model.User, error)
}

// authService 认证服务实现
type authService struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	logger *zap.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, logger *zap.Logger) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{users: users, roles: roles, logger: logger}
}

// AuthenticateByEmail 通过邮箱验证用户凭据
func (s *authService) AuthenticateByEmail(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	// 验证密码
	if !user.VerifyPassword(password) {
		s.logger.Warn("登录密码错误", zap.Uint64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	// 检查账户是否被禁用
	if !user.IsEnabled() {
		return nil, ErrAccountDisabled
	}

	role, err := s.roles.GetByID(ctx, user.RoleID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询用户角色失败: %w", err)
	}
	if role != nil && role.IsEnabled() {
		user.Role = role
	}
	return user, nil
}
