package storage

import (
	"context"
	"sync"
)

// Object 内存中保存的对象
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStore 内存对象存储，用于测试和本地开发
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
	// FailWith 非空时 Put 直接返回该错误
	FailWith error
}

// NewMemoryStore 创建内存对象存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]Object)}
}

// Put 写入对象
func (m *MemoryStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	m.objects[key] = Object{Data: buf, ContentType: contentType}
	return nil
}

// Get 读取对象
func (m *MemoryStore) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Len 对象数量
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
