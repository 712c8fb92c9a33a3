package service

import (
	"testing"

	"github.com/preetinest/cms-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAdminGuard_RequireAdmin 测试管理员校验
func TestAdminGuard_RequireAdmin(t *testing.T) {
	f := newFixture(t)
	guard := NewAdminGuard(f.users, f.roles)

	disabled := f.seedUser(t, "disabled@example.com", model.RoleAdmin)
	disabled.Active = false
	require.NoError(t, f.users.Save(f.ctx, disabled))

	deleted := f.seedUser(t, "deleted@example.com", model.RoleAdmin)
	deleted.MarkDeleted()
	require.NoError(t, f.users.Save(f.ctx, deleted))

	// 角色未启用的管理员
	inactiveRole := &model.Role{Name: "admin"}
	inactiveRole.Activate()
	inactiveRole.Active = false
	require.NoError(t, f.roles.Create(f.ctx, inactiveRole))
	orphan := &model.User{Name: "orphan", Email: "orphan@example.com", RoleID: inactiveRole.ID}
	orphan.Activate()
	require.NoError(t, f.users.Create(f.ctx, orphan))

	// 隐藏但启用的管理员仍可操作
	hidden := f.seedUser(t, "hidden@example.com", model.RoleAdmin)
	hidden.DisplayStatus = false
	require.NoError(t, f.users.Save(f.ctx, hidden))

	tests := []struct {
		name    string
		actorID uint64
		wantErr error
	}{
		{name: "管理员", actorID: f.admin.ID},
		{name: "隐藏的管理员", actorID: hidden.ID},
		{name: "未提供操作人", actorID: 0, wantErr: ErrInvalidArgument},
		{name: "操作人不存在", actorID: 9999, wantErr: ErrNotFound},
		{name: "操作人已停用", actorID: disabled.ID, wantErr: ErrNotFound},
		{name: "操作人已删除", actorID: deleted.ID, wantErr: ErrNotFound},
		{name: "非管理员角色", actorID: f.editor.ID, wantErr: ErrInvalidArgument},
		{name: "角色未启用", actorID: orphan.ID, wantErr: ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := guard.RequireAdmin(f.ctx, tt.actorID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, user.Role)
			assert.True(t, user.Role.IsAdmin())
		})
	}
}

// TestContentService_RequiresAdmin 测试每个写操作都要求管理员
func TestContentService_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	category, err := f.Category.Create(f.ctx, CategoryRequest{Name: "Travel", Slug: "travel"}, f.admin.ID)
	require.NoError(t, err)

	_, err = f.Category.Create(f.ctx, CategoryRequest{Name: "Food", Slug: "food"}, f.editor.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.Category.Update(f.ctx, category.ID, CategoryRequest{Name: "Travel", Slug: "travel"}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = f.Category.SoftDelete(f.ctx, category.ID, 424242)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := f.Category.FindByID(f.ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Travel", got.Name)
}
