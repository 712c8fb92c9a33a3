package repository

import (
	"context"

	"github.com/preetinest/cms-backend/internal/model"
	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Repository[model.User, *model.User]
	// GetByEmail 按邮箱查找未删除的用户
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// RoleRepository 角色数据访问接口
type RoleRepository interface {
	Repository[model.Role, *model.Role]
	// GetByName 按名称查找未删除的角色
	GetByName(ctx context.Context, name string) (*model.Role, error)
}

type userRepository struct {
	Repository[model.User, *model.User]
}

// NewUserRepository 创建用户数据访问实现
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{NewRepository[model.User](db)}
}

// NewMemoryUserRepository 创建内存用户数据访问实现
func NewMemoryUserRepository() UserRepository {
	return &userRepository{NewMemoryRepository[model.User]()}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.FindLive(ctx, "email", email)
}

type roleRepository struct {
	Repository[model.Role, *model.Role]
}

// NewRoleRepository 创建角色数据访问实现
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{NewRepository[model.Role](db)}
}

// NewMemoryRoleRepository 创建内存角色数据访问实现
func NewMemoryRoleRepository() RoleRepository {
	return &roleRepository{NewMemoryRepository[model.Role]()}
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*model.Role, error) {
	return r.FindLive(ctx, "name", name)
}
