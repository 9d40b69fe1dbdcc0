package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CodeStore 验证码/重置令牌存储接口
type CodeStore interface {
	// Save 存储键值，带过期时间
	Save(ctx context.Context, key, value string, ttl time.Duration) error

	// Get 取值，键不存在返回空串
	Get(ctx context.Context, key string) (string, error)

	// Delete 删除键
	Delete(ctx context.Context, key string) error
}

// RedisCodeStore 基于 redis 的验证码存储
type RedisCodeStore struct {
	rdb *redis.Client
}

var _ CodeStore = (*RedisCodeStore)(nil)

func NewRedisCodeStore(rdb *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{rdb: rdb}
}

func (s *RedisCodeStore) Save(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("保存验证码失败: %w", err)
	}
	return nil
}

func (s *RedisCodeStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("读取验证码失败: %w", err)
	}
	return val, nil
}

func (s *RedisCodeStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
