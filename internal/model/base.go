// Package model 定义数据模型
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel 基础模型，包含通用字段
type BaseModel struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID        string    `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedByID *uint64   `gorm:"index" json:"created_by_id,omitempty"` // 创建人，仅在创建时写入
}

// BeforeCreate 创建前自动生成 UUID
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	b.EnsureUUID()
	return nil
}

// EnsureUUID 外部 ID 为空时生成新的 UUID
func (b *BaseModel) EnsureUUID() {
	if b.UUID == "" {
		b.UUID = uuid.New().String()
	}
}

// Base 返回基础字段
func (b *BaseModel) Base() *BaseModel {
	return b
}

// SEOMeta 页面 SEO 元信息
type SEOMeta struct {
	MetaTitle       string `gorm:"type:varchar(255)" json:"meta_title"`
	MetaKeyword     string `gorm:"type:varchar(500)" json:"meta_keyword"`
	MetaDescription string `gorm:"type:varchar(1000)" json:"meta_description"`
}

// Entity 所有带生命周期的实体
type Entity interface {
	Base() *BaseModel
	Life() *Lifecycle
}

// Ordered 按 display_order 排序的子内容
type Ordered interface {
	GetDisplayOrder() int
}

// HomeFeatured 可在首页展示的实体，删除时需要取消首页展示
type HomeFeatured interface {
	HideFromHome()
}
