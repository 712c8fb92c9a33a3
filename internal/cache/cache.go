// Package cache 基于 Redis 的 JSON 缓存
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// JSONCache 单个 key 的 JSON 缓存
type JSONCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewJSONCache 创建缓存，client 为 nil 时所有操作都是空操作
func NewJSONCache(client *redis.Client, key string, ttl time.Duration) *JSONCache {
	return &JSONCache{client: client, key: key, ttl: ttl}
}

// Get 读取缓存到 dest，未命中返回 false
func (c *JSONCache) Get(ctx context.Context, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("读取缓存 %s 失败: %w", c.key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// 数据损坏时当作未命中
		_ = c.client.Del(ctx, c.key).Err()
		return false, nil
	}
	return true, nil
}

// Set 写入缓存
func (c *JSONCache) Set(ctx context.Context, value any) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化缓存 %s 失败: %w", c.key, err)
	}
	return c.client.Set(ctx, c.key, raw, c.ttl).Err()
}

// Invalidate 删除缓存
func (c *JSONCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key).Err()
}
