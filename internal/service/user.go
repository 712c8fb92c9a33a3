package service

import (
	"errors"
	"strings"

	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
)

// 用户与角色服务
type (
	UserService = ContentService[model.User, *model.User, UserRequest]
	RoleService = ContentService[model.Role, *model.Role, RoleRequest]
)

// MinPasswordLength 密码最小长度
const MinPasswordLength = 8

const (
	// maxPasswordBytes bcrypt 能处理的最大输入
	maxPasswordBytes = 72
	// maxMobileLength 与 users.mobile 列宽一致
	maxMobileLength = 20
)

var (
	errMissingPassword = errors.New("password 不能为空")
	errShortPassword   = errors.New("password 至少 8 位")
	errLongPassword    = errors.New("password 不能超过 72 字节")
	errInvalidEmail    = errors.New("email 格式错误")
)

// UserRequest 用户请求，更新时 Password 为空表示不修改
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Facebook string `json:"facebook"`
	Linkedin string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	RoleID   uint64 `json:"role_id"`
	model.SEOMeta
	StatusInput
}

// RoleRequest 角色请求
type RoleRequest struct {
	Name string `json:"name"`
	StatusInput
}

// NewUserService 创建用户服务，邮箱在未删除用户中唯一，角色必须启用
func NewUserService(repo repository.UserRepository, roles repository.RoleRepository, deps Deps) UserService {
	return NewContentService[model.User, *model.User, UserRequest](Descriptor[model.User, *model.User, UserRequest]{
		Kind: kindUser,
		Unique: &UniqueField[UserRequest]{
			Column:    "email",
			Value:     func(r UserRequest) string { return normalizeEmail(r.Email) },
			MaxLength: maxNameLength,
		},
		Validate: validateUser,
		References: []Reference[UserRequest]{
			Refer[UserRequest, model.Role, *model.Role](kindRole, model.VisibilityEnabled, roles,
				func(r UserRequest) (uint64, bool) { return r.RoleID, true }),
		},
		Apply: func(e *model.User, r UserRequest) error {
			if r.Password != "" {
				if err := e.SetPassword(r.Password); err != nil {
					return err
				}
			}
			e.Name = r.Name
			e.Email = normalizeEmail(r.Email)
			e.Mobile = r.Mobile
			e.Facebook = r.Facebook
			e.Linkedin = r.Linkedin
			e.Twitter = r.Twitter
			e.RoleID = r.RoleID
			e.SEOMeta = r.SEOMeta
			e.Role = nil
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
	}, repo, deps)
}

// NewRoleService 创建角色服务
func NewRoleService(repo repository.RoleRepository, deps Deps) RoleService {
	return NewContentService[model.Role, *model.Role, RoleRequest](Descriptor[model.Role, *model.Role, RoleRequest]{
		Kind: kindRole,
		Unique: &UniqueField[RoleRequest]{
			Column:    "name",
			Value:     func(r RoleRequest) string { return strings.TrimSpace(r.Name) },
			MaxLength: maxShortLength,
		},
		Apply: func(e *model.Role, r RoleRequest) error {
			e.Name = strings.TrimSpace(r.Name)
			r.StatusInput.apply(&e.Lifecycle)
			return nil
		},
	}, repo, deps)
}

func validateUser(r UserRequest, creating bool) error {
	if err := firstErr(
		requiredText("name", r.Name, maxShortLength),
		maxLength("mobile", r.Mobile, maxMobileLength),
		maxLength("facebook", r.Facebook, maxNameLength),
		maxLength("linkedin", r.Linkedin, maxNameLength),
		maxLength("twitter", r.Twitter, maxNameLength),
		validateSEO(r.SEOMeta),
	); err != nil {
		return err
	}
	if !strings.Contains(r.Email, "@") {
		return errInvalidEmail
	}
	if creating && r.Password == "" {
		return errMissingPassword
	}
	if r.Password != "" && len(r.Password) < MinPasswordLength {
		return errShortPassword
	}
	if len(r.Password) > maxPasswordBytes {
		return errLongPassword
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
