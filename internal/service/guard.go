package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
)

// AdminGuard 管理员权限校验，所有写操作开始前调用
type AdminGuard interface {
	// RequireAdmin 校验操作人是启用状态的 ADMIN 用户，actorID 为 0 表示未提供
	RequireAdmin(ctx context.Context, actorID uint64) (*model.User, error)
}

type adminGuard struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

// NewAdminGuard 创建管理员权限校验
func NewAdminGuard(users repository.UserRepository, roles repository.RoleRepository) AdminGuard {
	return &adminGuard{users: users, roles: roles}
}

func (g *adminGuard) RequireAdmin(ctx context.Context, actorID uint64) (*model.User, error) {
	if actorID == 0 {
		return nil, fmt.Errorf("%w: 缺少操作人 ID", ErrInvalidArgument)
	}

	user, err := g.users.GetByID(ctx, actorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询操作人 %d 失败: %w", actorID, err)
	}
	if user == nil || !user.IsEnabled() {
		return nil, fmt.Errorf("%w: 操作人 %d 不存在或已停用", ErrNotFound, actorID)
	}

	role, err := g.roles.GetByID(ctx, user.RoleID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询操作人 %d 的角色失败: %w", actorID, err)
	}
	if role == nil || !role.IsEnabled() || !role.IsAdmin() {
		return nil, fmt.Errorf("%w: 操作人 %d 需要 %s 角色", ErrInvalidArgument, actorID, model.RoleAdmin)
	}

	user.Role = role
	return user, nil
}
