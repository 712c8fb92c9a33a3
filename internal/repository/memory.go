package repository

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm/schema"
)

// memoryRepository 内存实现，用于测试和无数据库的本地运行
// 按 GORM 列名解析字段，存取时复制记录，行为与数据库保持一致
type memoryRepository[T any, P Record[T]] struct {
	mu     sync.RWMutex
	rows   map[uint64]P
	nextID uint64
	schema *schema.Schema
}

// NewMemoryRepository 创建内存数据访问实现
func NewMemoryRepository[T any, P Record[T]]() Repository[T, P] {
	s, err := schema.Parse(new(T), &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		panic(fmt.Sprintf("解析模型失败: %v", err))
	}
	return &memoryRepository[T, P]{
		rows:   make(map[uint64]P),
		schema: s,
	}
}

// clone 深拷贝记录，指针、切片和 map 字段不与调用方共享
func clone[T any, P Record[T]](entity P) P {
	c := *entity
	detach(reflect.ValueOf(&c).Elem())
	return P(&c)
}

// detach 把 v 中导出字段引用的数据替换为副本，未导出字段（如 time.Time 内部）保持值拷贝
func detach(v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() || !v.CanSet() {
			return
		}
		p := reflect.New(v.Type().Elem())
		p.Elem().Set(v.Elem())
		detach(p.Elem())
		v.Set(p)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.CanSet() {
				detach(f)
			}
		}
	case reflect.Slice:
		if v.IsNil() || !v.CanSet() {
			return
		}
		s := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(s, v)
		for i := 0; i < s.Len(); i++ {
			detach(s.Index(i))
		}
		v.Set(s)
	case reflect.Map:
		if v.IsNil() || !v.CanSet() {
			return
		}
		m := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			e := reflect.New(v.Type().Elem()).Elem()
			e.Set(iter.Value())
			detach(e)
			m.SetMapIndex(iter.Key(), e)
		}
		v.Set(m)
	}
}

func (r *memoryRepository[T, P]) Create(ctx context.Context, entity P) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	base := entity.Base()
	base.ID = r.nextID
	base.EnsureUUID()
	now := time.Now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
	r.rows[base.ID] = clone[T](entity)
	return nil
}

func (r *memoryRepository[T, P]) Save(ctx context.Context, entity P) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := entity.Base()
	if _, ok := r.rows[base.ID]; !ok {
		return ErrNotFound
	}
	base.UpdatedAt = time.Now()
	r.rows[base.ID] = clone[T](entity)
	return nil
}

func (r *memoryRepository[T, P]) GetByID(ctx context.Context, id uint64) (P, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if row, ok := r.rows[id]; ok {
		return clone[T](row), nil
	}
	return nil, ErrNotFound
}

func (r *memoryRepository[T, P]) GetByUUID(ctx context.Context, uuid string) (P, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if row.Base().UUID == uuid {
			return clone[T](row), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository[T, P]) FindLive(ctx context.Context, column, value string) (P, error) {
	rows := r.sorted(func(p P) bool {
		return p.Life().IsUsable() && r.match(p, column, value)
	})
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (r *memoryRepository[T, P]) ExistsLive(ctx context.Context, column, value string, excludeID uint64) (bool, error) {
	rows := r.sorted(func(p P) bool {
		return p.Life().IsUsable() && p.Base().ID != excludeID && r.match(p, column, value)
	})
	return len(rows) > 0, nil
}

func (r *memoryRepository[T, P]) ListVisible(ctx context.Context) ([]P, error) {
	return r.sorted(func(p P) bool { return p.Life().IsVisible() }), nil
}

func (r *memoryRepository[T, P]) ListVisibleBy(ctx context.Context, column string, id uint64) ([]P, error) {
	return r.sorted(func(p P) bool {
		return p.Life().IsVisible() && r.match(p, column, id)
	}), nil
}

func (r *memoryRepository[T, P]) ListVisiblePage(ctx context.Context, page Pagination) ([]P, int64, error) {
	rows := r.sorted(func(p P) bool { return p.Life().IsVisible() })
	sort.SliceStable(rows, func(i, j int) bool {
		bi, bj := rows[i].Base(), rows[j].Base()
		if !bi.CreatedAt.Equal(bj.CreatedAt) {
			return bi.CreatedAt.After(bj.CreatedAt)
		}
		return bi.ID > bj.ID
	})
	total := int64(len(rows))
	if page.PageSize <= 0 {
		return rows, total, nil
	}
	start := page.Offset()
	if start >= len(rows) {
		return []P{}, total, nil
	}
	end := start + page.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total, nil
}

// sorted 按 ID 升序返回满足条件的记录副本
func (r *memoryRepository[T, P]) sorted(keep func(P) bool) []P {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]P, 0, len(r.rows))
	for _, row := range r.rows {
		if keep(row) {
			items = append(items, clone[T](row))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Base().ID < items[j].Base().ID
	})
	return items
}

// match 比较指定列的值，指针字段取其指向的值
func (r *memoryRepository[T, P]) match(entity P, column string, want any) bool {
	field := r.schema.LookUpField(column)
	if field == nil {
		return false
	}
	got, _ := field.ValueOf(context.Background(), reflect.ValueOf(entity))
	v := reflect.ValueOf(got)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return false
	}
	return reflect.DeepEqual(v.Interface(), want)
}
