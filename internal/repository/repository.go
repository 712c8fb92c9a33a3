// Package repository 数据访问层
package repository

import (
	"context"
	"errors"

	"github.com/preetinest/cms-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// Record 约束实体指针类型
type Record[T any] interface {
	*T
	model.Entity
}

// Pagination 分页参数
type Pagination struct {
	Page     int // 页码，从 0 开始
	PageSize int // 每页数量
}

// Offset 计算偏移量
func (p Pagination) Offset() int {
	return p.Page * p.PageSize
}

// Repository 通用实体数据访问接口
// 读取单条记录时不过滤状态，由调用方判断可见性
type Repository[T any, P Record[T]] interface {
	Create(ctx context.Context, entity P) error
	Save(ctx context.Context, entity P) error
	GetByID(ctx context.Context, id uint64) (P, error)
	GetByUUID(ctx context.Context, uuid string) (P, error)
	// FindLive 按列查找未删除的记录
	FindLive(ctx context.Context, column, value string) (P, error)
	// ExistsLive 检查未删除记录中是否存在该列值，excludeID 为 0 时不排除
	ExistsLive(ctx context.Context, column, value string, excludeID uint64) (bool, error)
	// ListVisible 按插入顺序返回全部可见记录
	ListVisible(ctx context.Context) ([]P, error)
	// ListVisibleBy 按外键列返回可见记录
	ListVisibleBy(ctx context.Context, column string, id uint64) ([]P, error)
	// ListVisiblePage 按创建时间倒序分页返回可见记录
	ListVisiblePage(ctx context.Context, page Pagination) ([]P, int64, error)
}

// gormRepository 基于 GORM 的实现
type gormRepository[T any, P Record[T]] struct {
	db *gorm.DB
}

// NewRepository 创建 GORM 数据访问实现
func NewRepository[T any, P Record[T]](db *gorm.DB) Repository[T, P] {
	return &gormRepository[T, P]{db: db}
}

// live 未删除条件
func live(db *gorm.DB) *gorm.DB {
	return db.Where("lifecycle_state = ?", model.StateLive)
}

// visible 可见条件
func visible(db *gorm.DB) *gorm.DB {
	return db.Where("lifecycle_state = ? AND active = ? AND display_status = ?", model.StateLive, true, true)
}

func columnEq(column string, value any) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}
}

func (r *gormRepository[T, P]) Create(ctx context.Context, entity P) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

func (r *gormRepository[T, P]) Save(ctx context.Context, entity P) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

func (r *gormRepository[T, P]) GetByID(ctx context.Context, id uint64) (P, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *gormRepository[T, P]) GetByUUID(ctx context.Context, uuid string) (P, error) {
	return r.first(r.db.WithContext(ctx).Where("uuid = ?", uuid))
}

func (r *gormRepository[T, P]) FindLive(ctx context.Context, column, value string) (P, error) {
	return r.first(r.db.WithContext(ctx).Scopes(live).Where(columnEq(column, value)).Order("id ASC"))
}

func (r *gormRepository[T, P]) first(query *gorm.DB) (P, error) {
	var entity T
	if err := query.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return P(&entity), nil
}

func (r *gormRepository[T, P]) ExistsLive(ctx context.Context, column, value string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(new(T)).Scopes(live).Where(columnEq(column, value))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *gormRepository[T, P]) ListVisible(ctx context.Context) ([]P, error) {
	var items []P
	err := r.db.WithContext(ctx).Scopes(visible).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *gormRepository[T, P]) ListVisibleBy(ctx context.Context, column string, id uint64) ([]P, error) {
	var items []P
	err := r.db.WithContext(ctx).Scopes(visible).Where(columnEq(column, id)).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *gormRepository[T, P]) ListVisiblePage(ctx context.Context, page Pagination) ([]P, int64, error) {
	var items []P
	var total int64
	query := r.db.WithContext(ctx).Model(new(T)).Scopes(visible)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page.PageSize > 0 {
		query = query.Offset(page.Offset()).Limit(page.PageSize)
	}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
