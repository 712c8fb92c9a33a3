package model

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin 管理员角色名，比较时不区分大小写
const RoleAdmin = "ADMIN"

// User 后台用户，Active 表示账户是否启用
type User struct {
	BaseModel
	Lifecycle
	SEOMeta
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);index;not null" json:"email"` // 在未删除用户中唯一
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
	Mobile       string `gorm:"type:varchar(20)" json:"mobile,omitempty"`
	Facebook     string `gorm:"type:varchar(255)" json:"facebook,omitempty"`
	Linkedin     string `gorm:"type:varchar(255)" json:"linkedin,omitempty"`
	Twitter      string `gorm:"type:varchar(255)" json:"twitter,omitempty"`
	RoleID       uint64 `gorm:"index;not null" json:"role_id"`

	// 关联
	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// SetPassword 设置密码（哈希存储）
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword 验证密码
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Role 角色
type Role struct {
	BaseModel
	Lifecycle
	Name string `gorm:"type:varchar(100);index;not null" json:"name"`
}

// TableName 指定表名
func (Role) TableName() string {
	return "roles"
}

// IsAdmin 角色名为 ADMIN（不区分大小写）
func (r *Role) IsAdmin() bool {
	return r != nil && strings.EqualFold(r.Name, RoleAdmin)
}
