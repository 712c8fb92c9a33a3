package service

import (
	"strings"
	"testing"

	"github.com/preetinest/cms-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserService_Create 测试创建用户
func TestUserService_Create(t *testing.T) {
	f := newFixture(t)

	user, err := f.User.Create(f.ctx, UserRequest{
		Name:     "Writer",
		Email:    " Writer@Example.com ",
		Password: "longenough",
		RoleID:   f.editor.RoleID,
	}, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "writer@example.com", user.Email)
	assert.True(t, user.VerifyPassword("longenough"))
	assert.Nil(t, user.Role)

	tests := []struct {
		name    string
		req     UserRequest
		wantErr error
	}{
		{name: "邮箱重复", req: UserRequest{Name: "x", Email: "writer@example.com", Password: "longenough", RoleID: f.editor.RoleID}, wantErr: ErrConflict},
		{name: "缺少密码", req: UserRequest{Name: "x", Email: "x@example.com", RoleID: f.editor.RoleID}, wantErr: ErrInvalidArgument},
		{name: "密码太短", req: UserRequest{Name: "x", Email: "x@example.com", Password: "short", RoleID: f.editor.RoleID}, wantErr: ErrInvalidArgument},
		{name: "邮箱格式错误", req: UserRequest{Name: "x", Email: "nope", Password: "longenough", RoleID: f.editor.RoleID}, wantErr: ErrInvalidArgument},
		{name: "角色不存在", req: UserRequest{Name: "x", Email: "x@example.com", Password: "longenough", RoleID: 404}, wantErr: ErrNotFound},
		{name: "手机号超过列宽", req: UserRequest{Name: "x", Email: "x@example.com", Password: "longenough", Mobile: strings.Repeat("1", 21), RoleID: f.editor.RoleID}, wantErr: ErrInvalidArgument},
		{name: "密码超过 bcrypt 上限", req: UserRequest{Name: "x", Email: "x@example.com", Password: strings.Repeat("p", 73), RoleID: f.editor.RoleID}, wantErr: ErrInvalidArgument},
		{name: "邮箱超过列宽", req: UserRequest{Name: "x", Email: strings.Repeat("x", 250) + "@example.com", Password: "longenough", RoleID: f.editor.RoleID}, wantErr: ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.User.Create(f.ctx, tt.req, f.admin.ID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestUserService_Update 测试更新时密码为空表示不修改
func TestUserService_Update(t *testing.T) {
	f := newFixture(t)

	user, err := f.User.Create(f.ctx, UserRequest{Name: "Writer", Email: "w@example.com", Password: "longenough", RoleID: f.editor.RoleID}, f.admin.ID)
	require.NoError(t, err)

	updated, err := f.User.Update(f.ctx, user.ID, UserRequest{Name: "Writer 2", Email: "w@example.com", RoleID: f.editor.RoleID}, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Writer 2", updated.Name)
	assert.True(t, updated.VerifyPassword("longenough"))

	updated, err = f.User.Update(f.ctx, user.ID, UserRequest{Name: "Writer 2", Email: "w@example.com", Password: "brand-new-pass", RoleID: f.editor.RoleID}, f.admin.ID)
	require.NoError(t, err)
	assert.True(t, updated.VerifyPassword("brand-new-pass"))

	// 角色停用后不能再分配
	role, err := f.Role.Create(f.ctx, RoleRequest{Name: "GUEST", StatusInput: StatusInput{Active: boolPtr(false)}}, f.admin.ID)
	require.NoError(t, err)
	_, err = f.User.Update(f.ctx, user.ID, UserRequest{Name: "Writer 2", Email: "w@example.com", RoleID: role.ID}, f.admin.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestRoleService_Unique 测试角色名唯一
func TestRoleService_Unique(t *testing.T) {
	f := newFixture(t)

	_, err := f.Role.Create(f.ctx, RoleRequest{Name: model.RoleAdmin}, f.admin.ID)
	assert.ErrorIs(t, err, ErrConflict)

	role, err := f.Role.Create(f.ctx, RoleRequest{Name: " Reviewer "}, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reviewer", role.Name)

	roles, err := f.Role.ListActive(f.ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)
}
