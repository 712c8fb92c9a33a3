package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/preetinest/cms-backend/internal/media"
	"github.com/preetinest/cms-backend/internal/model"
	"github.com/preetinest/cms-backend/internal/repository"
	"go.uber.org/zap"
)

const slugColumn = "slug"

// MediaUploader 媒体上传，由 media.Resolver 实现
type MediaUploader interface {
	UploadBase64(ctx context.Context, encoded string) (string, error)
	KeyFromURL(raw string) string
}

// Deps 内容服务的公共依赖
type Deps struct {
	Guard  AdminGuard
	Media  MediaUploader
	Logger *zap.Logger
	// OnMenuChange 服务、博客、客户变更后调用，用于清理菜单缓存
	OnMenuChange func(ctx context.Context)
}

// StatusInput 请求中可选的启用/展示状态，为空时创建默认 true，更新保持原值
type StatusInput struct {
	Active        *bool `json:"active"`
	DisplayStatus *bool `json:"display_status"`
}

func (s StatusInput) apply(l *model.Lifecycle) {
	if s.Active != nil {
		l.Active = *s.Active
	}
	if s.DisplayStatus != nil {
		l.DisplayStatus = *s.DisplayStatus
	}
}

// MediaInput 图片输入：Base64 优先上传；Key 为已有 key 或本存储的 URL；都为空时保持原值
type MediaInput struct {
	Key    string `json:"key"`
	Base64 string `json:"base64"`
}

// UniqueField 在未删除记录中唯一的列，MaxLength 为 0 表示不限制
type UniqueField[R any] struct {
	Column    string
	Value     func(R) string
	MaxLength int
}

// Reference 外键引用及其可见性要求
type Reference[R any] struct {
	Kind   string
	Policy model.Visibility
	// ID 返回引用的 ID，第二个返回值为 false 表示未引用（可选外键）
	ID   func(R) (uint64, bool)
	load func(ctx context.Context, id uint64) (model.Entity, error)
}

// Refer 基于数据访问接口构造外键引用
func Refer[R any, T any, P repository.Record[T]](kind string, policy model.Visibility, repo repository.Repository[T, P], id func(R) (uint64, bool)) Reference[R] {
	return Reference[R]{
		Kind:   kind,
		Policy: policy,
		ID:     id,
		load: func(ctx context.Context, id uint64) (model.Entity, error) {
			return repo.GetByID(ctx, id)
		},
	}
}

// MediaBinding 请求中的图片输入与实体 key 字段的对应关系
type MediaBinding[R any, P any] struct {
	Field  string
	Input  func(R) MediaInput
	Target func(P) *string
}

// Descriptor 描述一种内容实体的差异部分
type Descriptor[T any, P repository.Record[T], R any] struct {
	Kind         string
	Unique       *UniqueField[R]
	ParentColumn string
	Validate     func(req R, creating bool) error
	References   []Reference[R]
	Media        []MediaBinding[R, P]
	Apply        func(entity P, req R) error
	OnChange     func(ctx context.Context)
}

// ContentService 通用内容实体服务
type ContentService[T any, P repository.Record[T], R any] interface {
	// Kind 实体名称
	Kind() string
	// Create 创建实体，需要管理员
	Create(ctx context.Context, req R, actorID uint64) (P, error)
	// FindByID 按 ID 查询可见实体，不存在时返回 nil
	FindByID(ctx context.Context, id uint64) (P, error)
	// FindByUUID 按外部 ID 查询可见实体
	FindByUUID(ctx context.Context, uuid string) (P, error)
	// FindBySlug 按 slug 查询可见实体
	FindBySlug(ctx context.Context, slug string) (P, error)
	// ListActive 列出全部可见实体
	ListActive(ctx context.Context) ([]P, error)
	// ListByParent 列出某个父实体下的可见实体
	ListByParent(ctx context.Context, parentID uint64) ([]P, error)
	// Update 更新实体，需要管理员；已隐藏但未删除的实体也可更新
	Update(ctx context.Context, id uint64, req R, actorID uint64) (P, error)
	// SoftDelete 软删除实体，需要管理员
	SoftDelete(ctx context.Context, id uint64, actorID uint64) error
}

type contentService[T any, P repository.Record[T], R any] struct {
	desc   Descriptor[T, P, R]
	repo   repository.Repository[T, P]
	guard  AdminGuard
	media  MediaUploader
	logger *zap.Logger
}

// NewContentService 按描述创建内容服务
func NewContentService[T any, P repository.Record[T], R any](desc Descriptor[T, P, R], repo repository.Repository[T, P], deps Deps) ContentService[T, P, R] {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &contentService[T, P, R]{
		desc:   desc,
		repo:   repo,
		guard:  deps.Guard,
		media:  deps.Media,
		logger: logger.With(zap.String("kind", desc.Kind)),
	}
}

func (s *contentService[T, P, R]) Kind() string {
	return s.desc.Kind
}

func (s *contentService[T, P, R]) Create(ctx context.Context, req R, actorID uint64) (P, error) {
	admin, err := s.guard.RequireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(req, true); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, req, 0); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}
	keys, err := s.uploadMedia(ctx, req)
	if err != nil {
		return nil, err
	}

	var entity T
	p := P(&entity)
	p.Life().Activate()
	createdBy := admin.ID
	p.Base().CreatedByID = &createdBy
	if err := s.desc.Apply(p, req); err != nil {
		return nil, err
	}
	s.assignMedia(p, keys)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("创建%s失败: %w", s.desc.Kind, err)
	}
	s.changed(ctx)

	s.logger.Info("创建成功",
		zap.Uint64("id", p.Base().ID),
		zap.String("uuid", p.Base().UUID),
		zap.Uint64("actor_id", actorID),
	)
	return p, nil
}

func (s *contentService[T, P, R]) FindByID(ctx context.Context, id uint64) (P, error) {
	return s.visible(s.repo.GetByID(ctx, id))
}

func (s *contentService[T, P, R]) FindByUUID(ctx context.Context, uuid string) (P, error) {
	return s.visible(s.repo.GetByUUID(ctx, uuid))
}

func (s *contentService[T, P, R]) FindBySlug(ctx context.Context, slug string) (P, error) {
	if s.desc.Unique == nil || s.desc.Unique.Column != slugColumn {
		return nil, fmt.Errorf("%w: %s不支持按 slug 查询", ErrInvalidArgument, s.desc.Kind)
	}
	if slug == "" {
		return nil, nil
	}
	return s.visible(s.repo.FindLive(ctx, slugColumn, slug))
}

// visible 不存在或不可见时返回 nil
func (s *contentService[T, P, R]) visible(entity P, err error) (P, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询%s失败: %w", s.desc.Kind, err)
	}
	if !entity.Life().IsVisible() {
		return nil, nil
	}
	return entity, nil
}

func (s *contentService[T, P, R]) ListActive(ctx context.Context) ([]P, error) {
	items, err := s.repo.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询%s列表失败: %w", s.desc.Kind, err)
	}
	sortByDisplayOrder(items)
	return items, nil
}

func (s *contentService[T, P, R]) ListByParent(ctx context.Context, parentID uint64) ([]P, error) {
	if s.desc.ParentColumn == "" {
		return nil, fmt.Errorf("%w: %s不支持按父级查询", ErrInvalidArgument, s.desc.Kind)
	}
	items, err := s.repo.ListVisibleBy(ctx, s.desc.ParentColumn, parentID)
	if err != nil {
		return nil, fmt.Errorf("查询%s列表失败: %w", s.desc.Kind, err)
	}
	sortByDisplayOrder(items)
	return items, nil
}

func (s *contentService[T, P, R]) Update(ctx context.Context, id uint64, req R, actorID uint64) (P, error) {
	if _, err := s.guard.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	entity, err := s.loadUsable(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(req, false); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, req, id); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}
	keys, err := s.uploadMedia(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.desc.Apply(entity, req); err != nil {
		return nil, err
	}
	s.assignMedia(entity, keys)

	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, fmt.Errorf("更新%s %d 失败: %w", s.desc.Kind, id, err)
	}
	s.changed(ctx)

	s.logger.Info("更新成功", zap.Uint64("id", id), zap.Uint64("actor_id", actorID))
	return entity, nil
}

func (s *contentService[T, P, R]) SoftDelete(ctx context.Context, id uint64, actorID uint64) error {
	if _, err := s.guard.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	entity, err := s.loadUsable(ctx, id)
	if err != nil {
		return err
	}

	entity.Life().MarkDeleted()
	if featured, ok := any(entity).(model.HomeFeatured); ok {
		featured.HideFromHome()
	}

	if err := s.repo.Save(ctx, entity); err != nil {
		return fmt.Errorf("删除%s %d 失败: %w", s.desc.Kind, id, err)
	}
	s.changed(ctx)

	s.logger.Info("删除成功", zap.Uint64("id", id), zap.Uint64("actor_id", actorID))
	return nil
}

// loadUsable 加载未删除的实体，不要求展示
func (s *contentService[T, P, R]) loadUsable(ctx context.Context, id uint64) (P, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("查询%s %d 失败: %w", s.desc.Kind, id, err)
	}
	if entity == nil || !entity.Life().IsUsable() {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, s.desc.Kind, id)
	}
	return entity, nil
}

func (s *contentService[T, P, R]) validate(req R, creating bool) error {
	if s.desc.Validate == nil {
		return nil
	}
	if err := s.desc.Validate(req, creating); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArgument, s.desc.Kind, err)
	}
	return nil
}

// checkUnique 唯一列在未删除记录中不能重复，excludeID 为当前实体
func (s *contentService[T, P, R]) checkUnique(ctx context.Context, req R, excludeID uint64) error {
	if s.desc.Unique == nil {
		return nil
	}
	column := s.desc.Unique.Column
	value := s.desc.Unique.Value(req)
	if value == "" {
		return fmt.Errorf("%w: %s的 %s 不能为空", ErrInvalidArgument, s.desc.Kind, column)
	}
	if limit := s.desc.Unique.MaxLength; limit > 0 {
		if err := maxLength(column, value, limit); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidArgument, s.desc.Kind, err)
		}
	}
	exists, err := s.repo.ExistsLive(ctx, column, value, excludeID)
	if err != nil {
		return fmt.Errorf("检查%s %s 失败: %w", s.desc.Kind, column, err)
	}
	if exists {
		return fmt.Errorf("%w: %s %s 已存在: %s", ErrConflict, s.desc.Kind, column, value)
	}
	return nil
}

func (s *contentService[T, P, R]) checkReferences(ctx context.Context, req R) error {
	for _, ref := range s.desc.References {
		id, ok := ref.ID(req)
		if !ok {
			continue
		}
		target, err := ref.load(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("查询%s %d 失败: %w", ref.Kind, id, err)
		}
		if err != nil || !target.Life().Satisfies(ref.Policy) {
			return fmt.Errorf("%w: %s %d", ErrNotFound, ref.Kind, id)
		}
	}
	return nil
}

// uploadMedia 在写库之前完成全部上传，返回与 desc.Media 对齐的 key，nil 表示未提供
func (s *contentService[T, P, R]) uploadMedia(ctx context.Context, req R) ([]*string, error) {
	keys := make([]*string, len(s.desc.Media))
	for i, binding := range s.desc.Media {
		in := binding.Input(req)
		switch {
		case in.Base64 != "":
			if s.media == nil {
				return nil, fmt.Errorf("%w: 未配置媒体存储", ErrUploadFailed)
			}
			key, err := s.media.UploadBase64(ctx, in.Base64)
			if err != nil {
				if errors.Is(err, media.ErrInvalidImage) {
					return nil, fmt.Errorf("%w: %s.%s: %v", ErrInvalidArgument, s.desc.Kind, binding.Field, err)
				}
				return nil, fmt.Errorf("%s.%s: %w", s.desc.Kind, binding.Field, err)
			}
			keys[i] = &key
		case in.Key != "":
			key := in.Key
			if s.media != nil {
				key = s.media.KeyFromURL(key)
			}
			keys[i] = &key
		}
	}
	return keys, nil
}

func (s *contentService[T, P, R]) assignMedia(entity P, keys []*string) {
	for i, binding := range s.desc.Media {
		if keys[i] != nil {
			*binding.Target(entity) = *keys[i]
		}
	}
}

func (s *contentService[T, P, R]) changed(ctx context.Context) {
	if s.desc.OnChange != nil {
		s.desc.OnChange(ctx)
	}
}

// sortByDisplayOrder 带排序字段的实体按 display_order 稳定排序
func sortByDisplayOrder[P any](items []P) {
	if len(items) == 0 {
		return
	}
	if _, ok := any(items[0]).(model.Ordered); !ok {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return any(items[i]).(model.Ordered).GetDisplayOrder() < any(items[j]).(model.Ordered).GetDisplayOrder()
	})
}
