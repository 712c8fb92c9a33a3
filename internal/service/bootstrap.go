package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
)

// BootstrapAdminRequest 初始化管理员参数
type BootstrapAdminRequest struct {
	Name     string
	Email    string
	Password string
}

// BootstrapAdmin 确保存在启用的 ADMIN 角色，并创建或恢复指定邮箱的管理员
// 不经过管理员校验，只供命令行工具在空库上使用
func BootstrapAdmin(ctx context.Context, users repository.UserRepository, roles repository.RoleRepository, req BootstrapAdminRequest) (*model.User, bool, error) {
	if err := validateUser(UserRequest{Name: req.Name, Email: req.Email, Password: req.Password}, true); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	role, err := ensureAdminRole(ctx, roles)
	if err != nil {
		return nil, false, err
	}

	email := normalizeEmail(req.Email)
	user, err := users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("查询用户失败: %w", err)
	}
	created := user == nil
	if created {
		user = &model.User{Email: email}
		user.Activate()
	}
	user.Name = req.Name
	user.RoleID = role.ID
	user.Active = true
	if err := user.SetPassword(req.Password); err != nil {
		return nil, false, fmt.Errorf("设置密码失败: %w", err)
	}

	if created {
		err = users.Create(ctx, user)
	} else {
		err = users.Save(ctx, user)
	}
	if err != nil {
		return nil, false, fmt.Errorf("保存管理员失败: %w", err)
	}
	user.Role = role
	return user, created, nil
}

func ensureAdminRole(ctx context.Context, roles repository.RoleRepository) (*model.Role, error) {
	role, err := roles.GetByName(ctx, model.RoleAdmin)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询 %s 角色失败: %w", model.RoleAdmin, err)
	}
	if role == nil {
		role = &model.Role{Name: model.RoleAdmin}
		role.Activate()
		if err := roles.Create(ctx, role); err != nil {
			return nil, fmt.Errorf("创建 %s 角色失败: %w", model.RoleAdmin, err)
		}
		return role, nil
	}
	if !role.Active {
		role.Active = true
		if err := roles.Save(ctx, role); err != nil {
			return nil, fmt.Errorf("启用 %s 角色失败: %w", model.RoleAdmin, err)
		}
	}
	return role, nil
}
